package imageio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/gogpu/texconv"
	"golang.org/x/image/tiff"
)

// Format is an output file format.
type Format int

const (
	// FormatTGA is run-length encoded TGA, the default.
	FormatTGA Format = iota

	// FormatTGARaw is uncompressed TGA.
	FormatTGARaw

	// FormatPNG is PNG.
	FormatPNG

	// FormatBMP is BMP.
	FormatBMP

	// FormatTIFF is deflate-compressed TIFF.
	FormatTIFF

	// FormatJPEG is JPEG at JPEGQuality. Alpha is always dropped.
	FormatJPEG
)

// JPEGQuality is the quality used for FormatJPEG.
const JPEGQuality = 95

// opaqueTolerance is how far from 1.0 an alpha value may be for the
// channel to be dropped on encode.
const opaqueTolerance = 1e-5

var formatNames = [...]string{
	FormatTGA:    "tga",
	FormatTGARaw: "tga-raw",
	FormatPNG:    "png",
	FormatBMP:    "bmp",
	FormatTIFF:   "tiff",
	FormatJPEG:   "jpeg",
}

var formatExts = [...]string{
	FormatTGA:    ".tga",
	FormatTGARaw: ".tga",
	FormatPNG:    ".png",
	FormatBMP:    ".bmp",
	FormatTIFF:   ".tif",
	FormatJPEG:   ".jpg",
}

// String returns the format name accepted by ParseFormat.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	if f < 0 || int(f) >= len(formatExts) {
		return ""
	}
	return formatExts[f]
}

// ParseFormat parses a format name, case-insensitively. "tif" and "jpg"
// are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "tga":
		return FormatTGA, nil
	case "tga-raw":
		return FormatTGARaw, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Encode writes buf to w in the given format. The alpha channel is written
// only when buf has one, at least one value differs from 1 and the format
// can store it.
func Encode(w io.Writer, buf *texconv.Buffer, format Format) error {
	alpha := format != FormatJPEG && buf.HasAlpha() && !buf.IsOpaque(opaqueTolerance)
	img := toImage(buf, alpha)

	var err error
	switch format {
	case FormatTGA, FormatTGARaw:
		err = encodeTGA(w, img, alpha, format == FormatTGA)
	case FormatPNG:
		err = imgio.PNGEncoder()(w, img)
	case FormatBMP:
		err = imgio.BMPEncoder()(w, img)
	case FormatJPEG:
		err = imgio.JPEGEncoder(JPEGQuality)(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %v: %w", format, err)
	}
	return nil
}

// WriteFile encodes buf and writes it to path.
func WriteFile(path string, buf *texconv.Buffer, format Format) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, buf, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
