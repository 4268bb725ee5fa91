package imageio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/texconv"
)

func TestRoundTripWithAlpha(t *testing.T) {
	for _, format := range []Format{FormatTGA, FormatTGARaw, FormatPNG, FormatTIFF} {
		t.Run(format.String(), func(t *testing.T) {
			src := pattern(t, 7, 5, 4)

			var out bytes.Buffer
			require.NoError(t, Encode(&out, src, format))

			got, err := Decode(&out)
			require.NoError(t, err)
			assert.Equal(t, 4, got.Channels())
			requireSamePixels(t, src, got, 1e-6)
		})
	}
}

func TestRoundTripOpaque(t *testing.T) {
	for _, format := range []Format{FormatTGA, FormatTGARaw, FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(format.String(), func(t *testing.T) {
			src := pattern(t, 6, 3, 3)

			var out bytes.Buffer
			require.NoError(t, Encode(&out, src, format))

			got, err := Decode(&out)
			require.NoError(t, err)
			assert.Equal(t, 3, got.Channels())
			requireSamePixels(t, src, got, 1e-6)
		})
	}
}

func TestEncodeDropsOpaqueAlpha(t *testing.T) {
	src, err := texconv.NewFilled(4, 4, 0.2, 0.4, 0.6, 1)
	require.NoError(t, err)
	// Within tolerance of 1.
	src.Set(1, 1, 0.2, 0.4, 0.6, 1-1e-6)

	var out bytes.Buffer
	require.NoError(t, Encode(&out, src, FormatTGA))
	assert.Equal(t, byte(24), out.Bytes()[16], "pixel depth")

	got, err := Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Channels())
}

func TestEncodeKeepsAlpha(t *testing.T) {
	src, err := texconv.NewFilled(4, 4, 0.2, 0.4, 0.6, 1)
	require.NoError(t, err)
	src.Set(0, 0, 0.2, 0.4, 0.6, 0.5)

	var out bytes.Buffer
	require.NoError(t, Encode(&out, src, FormatTGA))
	assert.Equal(t, byte(32), out.Bytes()[16], "pixel depth")
}

func TestEncodeJPEG(t *testing.T) {
	src, err := texconv.NewFilled(8, 8, 0.5, 0.5, 0.5, 0.3)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Encode(&out, src, FormatJPEG))

	got, err := Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Channels())
	requireSamePixels(t, src, got, 0.02)
}

func TestOrientation(t *testing.T) {
	// Row 0 is the bottom of the image.
	src, err := texconv.FromPixels(1, 2, 3, []float32{1, 0, 0, 0, 0, 1})
	require.NoError(t, err)

	img := ToImage(src)
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 0).B, "top row is blue")
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 1).R, "bottom row is red")

	back, err := FromImage(img)
	require.NoError(t, err)
	requireSamePixels(t, src, back, 0)

	var png bytes.Buffer
	require.NoError(t, Encode(&png, src, FormatPNG))
	decoded, err := Decode(&png)
	require.NoError(t, err)
	r, _, _, _ := decoded.At(0, 0)
	assert.InDelta(t, 1, r, 1e-6)
}

func TestDecodeTGATopLeftOrigin(t *testing.T) {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = tgaTrueColor
	hdr[12], hdr[14] = 1, 2
	hdr[16] = 24
	hdr[17] = tgaTopToBottom
	// BGR: first stored row is the top, red; second is blue.
	data := append(hdr, 0, 0, 255, 255, 0, 0)

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, _, b, _ := got.At(0, 0)
	assert.InDelta(t, 0, r, 1e-6)
	assert.InDelta(t, 1, b, 1e-6)
	r, _, _, _ = got.At(0, 1)
	assert.InDelta(t, 1, r, 1e-6)
}

func TestDecodeTGAGrayRLE(t *testing.T) {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = tgaRLEGray
	hdr[12], hdr[14] = 4, 1
	hdr[16] = 8
	// A run of three 0x33 pixels then one raw 0xcc pixel.
	data := append(hdr, 0x82, 0x33, 0x00, 0xcc)

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 3, got.Channels())
	for x, want := range []float32{0x33, 0x33, 0x33, 0xcc} {
		r, g, b, _ := got.At(x, 0)
		assert.InDelta(t, want/255, r, 1e-6)
		assert.InDelta(t, want/255, g, 1e-6)
		assert.InDelta(t, want/255, b, 1e-6)
	}
}

func TestWriteRLECompresses(t *testing.T) {
	src, err := texconv.NewFilled(64, 64, 0.1, 0.2, 0.3, 1)
	require.NoError(t, err)

	var rle, raw bytes.Buffer
	require.NoError(t, Encode(&rle, src, FormatTGA))
	require.NoError(t, Encode(&raw, src, FormatTGARaw))
	assert.Less(t, rle.Len(), raw.Len()/10)
	assert.Equal(t, byte(tgaRLETrueColor), rle.Bytes()[2])
	assert.Equal(t, byte(tgaTrueColor), raw.Bytes()[2])
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrEmptyData)

	_, err = Decode(bytes.NewReader([]byte("this is not an image, just some text")))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestWriteFileAndDecodeFile(t *testing.T) {
	src := pattern(t, 3, 3, 4)
	path := filepath.Join(t.TempDir(), "out.tga")

	require.NoError(t, WriteFile(path, src, FormatTGA))
	got, err := DecodeFile(path)
	require.NoError(t, err)
	requireSamePixels(t, src, got, 1e-6)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ext  string
	}{
		{"tga", FormatTGA, ".tga"},
		{"TGA-RAW", FormatTGARaw, ".tga"},
		{".png", FormatPNG, ".png"},
		{"bmp", FormatBMP, ".bmp"},
		{"tif", FormatTIFF, ".tif"},
		{"tiff", FormatTIFF, ".tif"},
		{"jpg", FormatJPEG, ".jpg"},
		{"jpeg", FormatJPEG, ".jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ext, got.Ext())
		})
	}

	_, err := ParseFormat("exr")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, "Format(42)", Format(42).String())
}
