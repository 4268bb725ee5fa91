package texconv

// Mask is a single-channel float32 image with values in [0, 1].
// It shares the bottom-up row order of Buffer.
type Mask struct {
	width  int
	height int
	data   []float32
}

// NewMask creates a new zero-filled mask. Non-positive dimensions produce
// an empty mask; use NewMaskFrom when the size comes from untrusted input.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
}

// NewMaskFilled creates a mask with every value set to v.
func NewMaskFilled(width, height int, v float32) *Mask {
	m := NewMask(width, height)
	m.Fill(v)
	return m
}

// NewMaskFrom creates a mask holding a copy of data.
func NewMaskFrom(width, height int, data []float32) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidDimensionsError{Op: "new mask", Width: width, Height: height}
	}
	if len(data) != width*height {
		return nil, &InvalidDimensionsError{
			Op: "new mask", Width: len(data), Height: 1,
			WantWidth: width * height, WantHeight: 1,
		}
	}
	m := NewMask(width, height)
	copy(m.data, data)
	return m, nil
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// Data returns the underlying mask data slice.
func (m *Mask) Data() []float32 { return m.data }

// SameSize reports whether the mask matches the buffer's width and height.
func (m *Mask) SameSize(b *Buffer) bool {
	return b != nil && m.width == b.width && m.height == b.height
}

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, v float32) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = v
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(v float32) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.width, m.height)
	copy(c.data, m.data)
	return c
}

// Inverted returns a new mask holding 1 - v for every value.
func (m *Mask) Inverted() *Mask {
	c := NewMask(m.width, m.height)
	for i, v := range m.data {
		c.data[i] = 1 - v
	}
	return c
}

// Scaled returns a new mask holding v*f for every value.
func (m *Mask) Scaled(f float32) *Mask {
	c := NewMask(m.width, m.height)
	for i, v := range m.data {
		c.data[i] = v * f
	}
	return c
}

// Triplicate expands the mask into an opaque RGBA buffer (v, v, v, 1).
// Blend operators use it to combine a single map with a colour image.
func (m *Mask) Triplicate() *Buffer {
	b := &Buffer{width: m.width, height: m.height, channels: 4, data: make([]float32, len(m.data)*4)}
	for i, v := range m.data {
		o := i * 4
		b.data[o] = v
		b.data[o+1] = v
		b.data[o+2] = v
		b.data[o+3] = 1
	}
	return b
}

// Clamp clamps every value to [0, 1] in place and returns m.
func (m *Mask) Clamp() *Mask {
	for i, v := range m.data {
		m.data[i] = clamp01(v)
	}
	return m
}
