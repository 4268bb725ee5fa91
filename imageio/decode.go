package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/texconv"
	"github.com/gogpu/texconv/internal/color"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Common errors for image I/O.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// decoders maps the extensions reported by filetype to image decoders.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"webp": webp.Decode,
}

// DecodeFile reads and decodes an image file.
func DecodeFile(path string) (*texconv.Buffer, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: read file: %w", err)
	}
	buf, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return buf, nil
}

// Decode reads an image from r and converts it to a buffer.
//
// The result has 3 channels when every pixel of the source is opaque and
// 4 otherwise. Rows are flipped so that row 0 is the bottom of the image.
func Decode(r io.Reader) (*texconv.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: read: %w", err)
	}
	return decodeBytes(data)
}

func decodeBytes(data []byte) (*texconv.Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

func decodeImage(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("imageio: sniff: %w", err)
	}

	if kind == filetype.Unknown {
		// TGA has no signature; anything unrecognised gets one chance as TGA.
		img, terr := decodeTGA(bytes.NewReader(data))
		if terr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, terr)
		}
		return img, nil
	}

	decode, ok := decoders[kind.Extension]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", kind.Extension, err)
	}
	return img, nil
}

// FromImage converts an image.Image to a buffer with straight alpha.
// Row 0 of the result is the bottom row of img.
func FromImage(img image.Image) (*texconv.Buffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	channels := 4
	if isOpaque(img) {
		channels = 3
	}
	buf, err := texconv.NewBuffer(w, h, channels)
	if err != nil {
		return nil, fmt.Errorf("imageio: %w", err)
	}
	data := buf.Data()

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range h {
			src := nrgba.Pix[y*nrgba.Stride:]
			dst := (h - 1 - y) * w * channels
			for x := range w {
				s := x * 4
				d := dst + x*channels
				data[d] = color.U8ToUnit(src[s])
				data[d+1] = color.U8ToUnit(src[s+1])
				data[d+2] = color.U8ToUnit(src[s+2])
				if channels == 4 {
					data[d+3] = color.U8ToUnit(src[s+3])
				}
			}
		}
		return buf, nil
	}

	// Generic slow path for any image type
	for y := range h {
		dst := (h - 1 - y) * w * channels
		for x := range w {
			c := stdcolor.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(stdcolor.NRGBA64)
			d := dst + x*channels
			data[d] = color.U16ToUnit(c.R)
			data[d+1] = color.U16ToUnit(c.G)
			data[d+2] = color.U16ToUnit(c.B)
			if channels == 4 {
				data[d+3] = color.U16ToUnit(c.A)
			}
		}
	}
	return buf, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// ToImage converts a buffer to a top-down *image.NRGBA. A buffer without
// alpha produces an opaque image.
func ToImage(buf *texconv.Buffer) *image.NRGBA {
	return toImage(buf, buf.HasAlpha())
}

func toImage(buf *texconv.Buffer, keepAlpha bool) *image.NRGBA {
	w, h, ch := buf.Width(), buf.Height(), buf.Channels()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	data := buf.Data()
	for y := range h {
		src := (h - 1 - y) * w * ch
		dst := img.Pix[y*img.Stride:]
		for x := range w {
			s := src + x*ch
			d := x * 4
			dst[d] = color.UnitToU8(data[s])
			dst[d+1] = color.UnitToU8(data[s+1])
			dst[d+2] = color.UnitToU8(data[s+2])
			dst[d+3] = 255
			if keepAlpha && ch == 4 {
				dst[d+3] = color.UnitToU8(data[s+3])
			}
		}
	}
	return img
}
