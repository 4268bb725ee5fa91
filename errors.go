package texconv

import (
	"errors"
	"fmt"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is matched by every *InvalidDimensionsError:
	// a non-positive size, or two buffers that must agree in size but don't.
	ErrInvalidDimensions = errors.New("texconv: invalid dimensions")

	// ErrUnsupportedChannel is matched by every *UnsupportedChannelError.
	ErrUnsupportedChannel = errors.New("texconv: unsupported channel")
)

// InvalidDimensionsError reports a bad buffer size. When WantWidth and
// WantHeight are zero the size itself was invalid; otherwise it did not
// match the size the operation required.
type InvalidDimensionsError struct {
	Op         string
	Width      int
	Height     int
	WantWidth  int
	WantHeight int
}

func (e *InvalidDimensionsError) Error() string {
	if e.WantWidth == 0 && e.WantHeight == 0 {
		return fmt.Sprintf("texconv: %s: invalid dimensions %dx%d", e.Op, e.Width, e.Height)
	}
	return fmt.Sprintf("texconv: %s: size %dx%d does not match %dx%d",
		e.Op, e.Width, e.Height, e.WantWidth, e.WantHeight)
}

// Is makes errors.Is(err, ErrInvalidDimensions) succeed.
func (e *InvalidDimensionsError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// UnsupportedChannelError reports a channel index that the source does not have.
type UnsupportedChannelError struct {
	Channel  int
	Channels int
}

func (e *UnsupportedChannelError) Error() string {
	return fmt.Sprintf("texconv: channel %d not available (buffer has %d)", e.Channel, e.Channels)
}

// Is makes errors.Is(err, ErrUnsupportedChannel) succeed.
func (e *UnsupportedChannelError) Is(target error) bool {
	return target == ErrUnsupportedChannel
}

// CheckSameSize returns an *InvalidDimensionsError naming op when b and o differ in size.
func CheckSameSize(op string, b, o *Buffer) error {
	if b == nil || o == nil {
		return &InvalidDimensionsError{Op: op}
	}
	if !b.SameSize(o) {
		return &InvalidDimensionsError{
			Op: op, Width: o.width, Height: o.height,
			WantWidth: b.width, WantHeight: b.height,
		}
	}
	return nil
}

// CheckMaskSize returns an *InvalidDimensionsError naming op when m does not match b.
func CheckMaskSize(op string, b *Buffer, m *Mask) error {
	if b == nil || m == nil {
		return &InvalidDimensionsError{Op: op}
	}
	if !m.SameSize(b) {
		return &InvalidDimensionsError{
			Op: op, Width: m.width, Height: m.height,
			WantWidth: b.width, WantHeight: b.height,
		}
	}
	return nil
}
