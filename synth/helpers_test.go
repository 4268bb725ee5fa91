package synth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/texconv"
)

// flat returns a w x h RGBA buffer filled with one colour.
func flat(t *testing.T, w, h int, r, g, b, a float32) *texconv.Buffer {
	t.Helper()
	buf, err := texconv.NewFilled(w, h, r, g, b, a)
	require.NoError(t, err)
	return buf
}

// flatRGB returns a w x h RGB buffer filled with one colour.
func flatRGB(t *testing.T, w, h int, r, g, b float32) *texconv.Buffer {
	t.Helper()
	data := make([]float32, 0, w*h*3)
	for range w * h {
		data = append(data, r, g, b)
	}
	buf, err := texconv.FromPixels(w, h, 3, data)
	require.NoError(t, err)
	return buf
}

// grey returns a w x h RGB buffer with every channel set to v.
func grey(t *testing.T, w, h int, v float32) *texconv.Buffer {
	return flatRGB(t, w, h, v, v, v)
}

// requireUniform checks that every pixel of buf equals want within tol.
func requireUniform(t *testing.T, buf *texconv.Buffer, want [4]float32, tol float32) {
	t.Helper()
	require.NotNil(t, buf)
	for y := range buf.Height() {
		for x := range buf.Width() {
			r, g, b, a := buf.At(x, y)
			got := [4]float32{r, g, b, a}
			for c := range 4 {
				require.InDeltaf(t, want[c], got[c], float64(tol),
					"pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// baseMaps returns a 4x4 diffuse and normal under the names "d" and "n".
func baseMaps(t *testing.T) Maps {
	return Maps{
		"d": flat(t, 4, 4, 0.5, 0.5, 0.5, 1),
		"n": flat(t, 4, 4, 0.5, 0.5, 1, 1),
	}
}
