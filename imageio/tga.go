package imageio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaRLETrueColor = 10
	tgaRLEGray      = 11
)

const (
	tgaHeaderSize = 18

	// Descriptor bits.
	tgaRightToLeft = 1 << 4
	tgaTopToBottom = 1 << 5
	tgaAlphaBits   = 0x0f

	// Packet header bit marking a run-length packet.
	tgaRunPacket = 0x80
	tgaMaxPacket = 128
)

var errTGAHeader = errors.New("invalid TGA header")

type tgaHeader struct {
	idLength     uint8
	colorMapType uint8
	imageType    uint8
	colorMapLen  uint16
	colorMapBits uint8
	width        int
	height       int
	depth        uint8
	descriptor   uint8
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var b [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return tgaHeader{}, err
	}
	h := tgaHeader{
		idLength:     b[0],
		colorMapType: b[1],
		imageType:    b[2],
		colorMapLen:  binary.LittleEndian.Uint16(b[5:7]),
		colorMapBits: b[7],
		width:        int(binary.LittleEndian.Uint16(b[12:14])),
		height:       int(binary.LittleEndian.Uint16(b[14:16])),
		depth:        b[16],
		descriptor:   b[17],
	}

	if h.width == 0 || h.height == 0 || h.colorMapType > 1 {
		return h, errTGAHeader
	}
	switch h.imageType {
	case tgaTrueColor, tgaRLETrueColor:
		if h.depth != 24 && h.depth != 32 {
			return h, fmt.Errorf("unsupported TGA depth %d", h.depth)
		}
	case tgaGray, tgaRLEGray:
		if h.depth != 8 {
			return h, fmt.Errorf("unsupported TGA depth %d", h.depth)
		}
	default:
		return h, fmt.Errorf("unsupported TGA image type %d", h.imageType)
	}
	return h, nil
}

// decodeTGA decodes uncompressed and run-length encoded true-colour and
// grayscale TGA images. Colour-mapped images are not supported.
func decodeTGA(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}

	skip := int64(h.idLength)
	if h.colorMapType == 1 {
		skip += int64(h.colorMapLen) * int64((h.colorMapBits+7)/8)
	}
	if _, err := io.CopyN(io.Discard, br, skip); err != nil {
		return nil, fmt.Errorf("TGA header fields: %w", err)
	}

	bpp := int(h.depth / 8)
	raw := make([]byte, h.width*h.height*bpp)
	if h.imageType == tgaRLETrueColor || h.imageType == tgaRLEGray {
		err = readRLE(br, raw, bpp)
	} else {
		_, err = io.ReadFull(br, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("TGA pixel data: %w", err)
	}

	hasAlpha := bpp == 4 && h.descriptor&tgaAlphaBits != 0
	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	for row := range h.height {
		y := h.height - 1 - row
		if h.descriptor&tgaTopToBottom != 0 {
			y = row
		}
		dst := img.Pix[y*img.Stride:]
		for col := range h.width {
			x := col
			if h.descriptor&tgaRightToLeft != 0 {
				x = h.width - 1 - col
			}
			s := (row*h.width + col) * bpp
			d := x * 4
			if bpp == 1 {
				dst[d], dst[d+1], dst[d+2] = raw[s], raw[s], raw[s]
			} else {
				dst[d], dst[d+1], dst[d+2] = raw[s+2], raw[s+1], raw[s]
			}
			dst[d+3] = 255
			if hasAlpha {
				dst[d+3] = raw[s+3]
			}
		}
	}
	return img, nil
}

// readRLE expands TGA run-length packets into dst. Packets may cross
// scanline boundaries.
func readRLE(r io.ByteReader, dst []byte, bpp int) error {
	px := make([]byte, bpp)
	for i := 0; i < len(dst); {
		head, err := r.ReadByte()
		if err != nil {
			return err
		}
		n := int(head&^tgaRunPacket) + 1
		if i+n*bpp > len(dst) {
			return errors.New("RLE packet overruns image")
		}
		if head&tgaRunPacket != 0 {
			for k := range bpp {
				if px[k], err = r.ReadByte(); err != nil {
					return err
				}
			}
			for range n {
				copy(dst[i:], px)
				i += bpp
			}
			continue
		}
		for range n * bpp {
			if dst[i], err = r.ReadByte(); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// encodeTGA writes img as a 24- or 32-bit true-colour TGA with a
// bottom-left origin, run-length encoded when rle is set.
func encodeTGA(w io.Writer, img *image.NRGBA, alpha, rle bool) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width > 0xffff || height > 0xffff {
		return fmt.Errorf("imageio: TGA size %dx%d too large", width, height)
	}

	bpp := 3
	var hdr [tgaHeaderSize]byte
	hdr[2] = tgaTrueColor
	if rle {
		hdr[2] = tgaRLETrueColor
	}
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(width))
	binary.LittleEndian.PutUint16(hdr[14:16], uint16(height))
	hdr[16] = 24
	if alpha {
		bpp = 4
		hdr[16] = 32
		hdr[17] = 8
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	line := make([]byte, width*bpp)
	for y := height - 1; y >= 0; y-- {
		src := img.Pix[y*img.Stride:]
		for x := range width {
			s, d := x*4, x*bpp
			line[d], line[d+1], line[d+2] = src[s+2], src[s+1], src[s]
			if alpha {
				line[d+3] = src[s+3]
			}
		}
		var err error
		if rle {
			err = writeRLE(bw, line, bpp)
		} else {
			_, err = bw.Write(line)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeRLE encodes one scanline. Runs of two or more identical pixels become
// run packets; everything else is grouped into raw packets.
func writeRLE(w *bufio.Writer, line []byte, bpp int) error {
	n := len(line) / bpp
	pixel := func(i int) []byte { return line[i*bpp : (i+1)*bpp] }
	same := func(i, j int) bool {
		for k := range bpp {
			if line[i*bpp+k] != line[j*bpp+k] {
				return false
			}
		}
		return true
	}

	for i := 0; i < n; {
		run := 1
		for i+run < n && run < tgaMaxPacket && same(i, i+run) {
			run++
		}
		if run > 1 {
			if err := w.WriteByte(byte(run-1) | tgaRunPacket); err != nil {
				return err
			}
			if _, err := w.Write(pixel(i)); err != nil {
				return err
			}
			i += run
			continue
		}

		raw := 1
		for i+raw < n && raw < tgaMaxPacket && (i+raw+1 >= n || !same(i+raw, i+raw+1)) {
			raw++
		}
		if err := w.WriteByte(byte(raw - 1)); err != nil {
			return err
		}
		if _, err := w.Write(line[i*bpp : (i+raw)*bpp]); err != nil {
			return err
		}
		i += raw
	}
	return nil
}
