package texconv

// Buffer is an in-memory RGB or RGBA image with float32 channel values.
//
// Pixels are stored row-major in a single contiguous slice, channels
// interleaved in R, G, B[, A] order. Row 0 is the bottom row of the image,
// matching the texture coordinate convention of the host application;
// codecs that work top-down must flip rows on the way in and out.
//
// Channel values are nominally in [0, 1]. Operators clamp on exit, but
// values may transiently leave that range while a computation is running.
//
// A 3-channel buffer behaves as if its alpha were 1.0 everywhere.
//
// Thread safety: Buffer is safe for concurrent reads. Operators never write
// to their inputs; they return new buffers.
type Buffer struct {
	width    int
	height   int
	channels int
	data     []float32
}

// NewBuffer creates a zero-filled buffer.
// channels must be 3 or 4; width and height must be positive.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidDimensionsError{Op: "new buffer", Width: width, Height: height}
	}
	if channels != 3 && channels != 4 {
		return nil, &UnsupportedChannelError{Channel: channels, Channels: 4}
	}
	return &Buffer{
		width:    width,
		height:   height,
		channels: channels,
		data:     make([]float32, width*height*channels),
	}, nil
}

// NewFilled creates a 4-channel buffer with every pixel set to (r, g, b, a).
func NewFilled(width, height int, r, g, b, a float32) (*Buffer, error) {
	buf, err := NewBuffer(width, height, 4)
	if err != nil {
		return nil, err
	}
	buf.Fill(r, g, b, a)
	return buf, nil
}

// FromPixels creates a buffer holding a copy of data.
// len(data) must equal width*height*channels.
func FromPixels(width, height, channels int, data []float32) (*Buffer, error) {
	buf, err := NewBuffer(width, height, channels)
	if err != nil {
		return nil, err
	}
	if len(data) != len(buf.data) {
		return nil, &InvalidDimensionsError{
			Op:    "from pixels",
			Width: len(data), Height: 1,
			WantWidth: len(buf.data), WantHeight: 1,
		}
	}
	copy(buf.data, data)
	return buf, nil
}

// Width returns the image width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *Buffer) Height() int { return b.height }

// Channels returns 3 or 4.
func (b *Buffer) Channels() int { return b.channels }

// HasAlpha reports whether the buffer stores an explicit alpha channel.
func (b *Buffer) HasAlpha() bool { return b.channels == 4 }

// Data returns the underlying pixel slice. Callers that modify it take over
// the responsibility of keeping values in range.
func (b *Buffer) Data() []float32 { return b.data }

// Pixels returns the number of pixels (width*height).
func (b *Buffer) Pixels() int { return b.width * b.height }

// SameSize reports whether o has the same width and height as b.
func (b *Buffer) SameSize(o *Buffer) bool {
	return o != nil && b.width == o.width && b.height == o.height
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]float32, len(b.data))
	copy(data, b.data)
	return &Buffer{width: b.width, height: b.height, channels: b.channels, data: data}
}

// offset returns the index of the first channel of pixel (x, y).
func (b *Buffer) offset(x, y int) int {
	return (y*b.width + x) * b.channels
}

// At returns the pixel at (x, y). Alpha is 1 for 3-channel buffers.
// Coordinates outside the buffer return transparent black.
func (b *Buffer) At(x, y int) (r, g, bl, a float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, 0, 0, 0
	}
	i := b.offset(x, y)
	a = 1
	if b.channels == 4 {
		a = b.data[i+3]
	}
	return b.data[i], b.data[i+1], b.data[i+2], a
}

// Set sets the pixel at (x, y). Alpha is ignored for 3-channel buffers.
// Coordinates outside the buffer are ignored.
func (b *Buffer) Set(x, y int, r, g, bl, a float32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := b.offset(x, y)
	b.data[i] = r
	b.data[i+1] = g
	b.data[i+2] = bl
	if b.channels == 4 {
		b.data[i+3] = a
	}
}

// Fill sets every pixel to (r, g, b, a).
func (b *Buffer) Fill(r, g, bl, a float32) {
	for i := 0; i < len(b.data); i += b.channels {
		b.data[i] = r
		b.data[i+1] = g
		b.data[i+2] = bl
		if b.channels == 4 {
			b.data[i+3] = a
		}
	}
}

// WithAlpha returns a 4-channel copy of the buffer. A missing alpha channel
// is filled with 1.0.
func (b *Buffer) WithAlpha() *Buffer {
	if b.channels == 4 {
		return b.Clone()
	}
	out := &Buffer{width: b.width, height: b.height, channels: 4, data: make([]float32, b.Pixels()*4)}
	for p := range b.Pixels() {
		copy(out.data[p*4:p*4+3], b.data[p*3:p*3+3])
		out.data[p*4+3] = 1
	}
	return out
}

// Channel extracts a single channel into a mask. Channel 3 of a 3-channel
// buffer is reported as an *UnsupportedChannelError; callers that want the
// implicit alpha should use AlphaMask.
func (b *Buffer) Channel(index int) (*Mask, error) {
	if index < 0 || index >= b.channels {
		return nil, &UnsupportedChannelError{Channel: index, Channels: b.channels}
	}
	m := &Mask{width: b.width, height: b.height, data: make([]float32, b.Pixels())}
	for p := range m.data {
		m.data[p] = b.data[p*b.channels+index]
	}
	return m, nil
}

// AlphaMask returns the alpha channel, or a mask of ones for 3-channel buffers.
func (b *Buffer) AlphaMask() *Mask {
	if b.channels == 3 {
		return NewMaskFilled(b.width, b.height, 1)
	}
	m, _ := b.Channel(3)
	return m
}

// SetChannel overwrites one channel with the mask values in place.
// Writing channel 3 of a 3-channel buffer is an error; use WithAlpha first.
func (b *Buffer) SetChannel(index int, m *Mask) error {
	if index < 0 || index >= b.channels {
		return &UnsupportedChannelError{Channel: index, Channels: b.channels}
	}
	if m.width != b.width || m.height != b.height {
		return &InvalidDimensionsError{
			Op: "set channel", Width: m.width, Height: m.height,
			WantWidth: b.width, WantHeight: b.height,
		}
	}
	for p, v := range m.data {
		b.data[p*b.channels+index] = v
	}
	return nil
}

// Clamp clamps every channel to [0, 1] in place and returns b.
func (b *Buffer) Clamp() *Buffer {
	for i, v := range b.data {
		b.data[i] = clamp01(v)
	}
	return b
}

// FlipVertical returns a copy with the row order reversed. Codecs use it to
// convert between the bottom-up storage order and top-down image formats.
func (b *Buffer) FlipVertical() *Buffer {
	out := &Buffer{width: b.width, height: b.height, channels: b.channels, data: make([]float32, len(b.data))}
	row := b.width * b.channels
	for y := range b.height {
		src := b.data[y*row : (y+1)*row]
		copy(out.data[(b.height-1-y)*row:], src)
	}
	return out
}

// IsOpaque reports whether every alpha value is within tolerance of 1.
// 3-channel buffers are always opaque.
func (b *Buffer) IsOpaque(tolerance float32) bool {
	if b.channels == 3 {
		return true
	}
	for i := 3; i < len(b.data); i += 4 {
		d := b.data[i] - 1
		if d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}

// clamp01 clamps v to [0, 1]. NaN maps to 0.
func clamp01(v float32) float32 {
	if v > 0 {
		if v > 1 {
			return 1
		}
		return v
	}
	return 0
}
