package texconv

import "math"

// bilinearAxis holds the precomputed sample positions along one axis:
// for output index i the source is lerp(src[lo[i]], src[hi[i]], w[i]).
type bilinearAxis struct {
	lo []int
	hi []int
	w  []float64
}

// newBilinearAxis maps n output samples onto an axis of size old.
//
// Output index i samples source coordinate i*old/n. The sample floors to
// the nearest-below source index and blends toward the next one, which is
// clamped to the last valid index, so nothing is extrapolated past the edge.
func newBilinearAxis(old, n int) bilinearAxis {
	ax := bilinearAxis{lo: make([]int, n), hi: make([]int, n), w: make([]float64, n)}
	ratio := float64(old) / float64(n)
	for i := range n {
		c := float64(i) * ratio
		lo := int(math.Floor(c))
		if lo > old-1 {
			lo = old - 1
		}
		hi := lo + 1
		if hi > old-1 {
			hi = old - 1
		}
		ax.lo[i] = lo
		ax.hi[i] = hi
		ax.w[i] = c - float64(lo)
	}
	return ax
}

// Resize resamples b to newWidth x newHeight with bilinear interpolation,
// each channel independently. A buffer that already has the target size is
// returned as a copy. The result is deterministic for identical inputs.
func Resize(b *Buffer, newHeight, newWidth int) (*Buffer, error) {
	if newWidth <= 0 || newHeight <= 0 {
		return nil, &InvalidDimensionsError{Op: "resize", Width: newWidth, Height: newHeight}
	}
	if b.width == newWidth && b.height == newHeight {
		return b.Clone(), nil
	}

	xs := newBilinearAxis(b.width, newWidth)
	ys := newBilinearAxis(b.height, newHeight)
	ch := b.channels
	out := &Buffer{width: newWidth, height: newHeight, channels: ch, data: make([]float32, newWidth*newHeight*ch)}

	for y := range newHeight {
		row0 := ys.lo[y] * b.width
		row1 := ys.hi[y] * b.width
		wy := ys.w[y]
		for x := range newWidth {
			wx := xs.w[x]
			tl := (row0 + xs.lo[x]) * ch
			tr := (row0 + xs.hi[x]) * ch
			bl := (row1 + xs.lo[x]) * ch
			br := (row1 + xs.hi[x]) * ch
			o := (y*newWidth + x) * ch
			for c := range ch {
				out.data[o+c] = float32(lerp2D(
					float64(b.data[tl+c]), float64(b.data[tr+c]),
					float64(b.data[bl+c]), float64(b.data[br+c]),
					wx, wy))
			}
		}
	}
	return out, nil
}

// ResizeMask is Resize for single-channel masks.
func ResizeMask(m *Mask, newHeight, newWidth int) (*Mask, error) {
	if newWidth <= 0 || newHeight <= 0 {
		return nil, &InvalidDimensionsError{Op: "resize mask", Width: newWidth, Height: newHeight}
	}
	if m.width == newWidth && m.height == newHeight {
		return m.Clone(), nil
	}

	xs := newBilinearAxis(m.width, newWidth)
	ys := newBilinearAxis(m.height, newHeight)
	out := NewMask(newWidth, newHeight)

	for y := range newHeight {
		row0 := ys.lo[y] * m.width
		row1 := ys.hi[y] * m.width
		wy := ys.w[y]
		for x := range newWidth {
			wx := xs.w[x]
			out.data[y*newWidth+x] = float32(lerp2D(
				float64(m.data[row0+xs.lo[x]]), float64(m.data[row0+xs.hi[x]]),
				float64(m.data[row1+xs.lo[x]]), float64(m.data[row1+xs.hi[x]]),
				wx, wy))
		}
	}
	return out, nil
}

// lerp2D interpolates between four corners: tl/tr on the lower row,
// bl/br on the upper one, with horizontal weight tx and vertical weight ty.
func lerp2D(tl, tr, bl, br, tx, ty float64) float64 {
	top := tl*(1-tx) + tr*tx
	bottom := bl*(1-tx) + br*tx
	return top*(1-ty) + bottom*ty
}
