package imageio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/texconv"
)

// pattern returns a w x h buffer whose values are exact multiples of 1/255,
// so they survive 8-bit encoding unchanged. Alpha, when present, varies.
func pattern(t *testing.T, w, h, channels int) *texconv.Buffer {
	t.Helper()
	data := make([]float32, w*h*channels)
	for i := range data {
		data[i] = float32((i*37+11)%256) / 255
	}
	buf, err := texconv.FromPixels(w, h, channels, data)
	require.NoError(t, err)
	return buf
}

// requireSamePixels checks that got matches want within tol, comparing
// alpha only when both have it.
func requireSamePixels(t *testing.T, want, got *texconv.Buffer, tol float64) {
	t.Helper()
	require.Equal(t, want.Width(), got.Width())
	require.Equal(t, want.Height(), got.Height())
	for y := range want.Height() {
		for x := range want.Width() {
			wr, wg, wb, wa := want.At(x, y)
			gr, gg, gb, ga := got.At(x, y)
			require.InDeltaf(t, wr, gr, tol, "R at (%d,%d)", x, y)
			require.InDeltaf(t, wg, gg, tol, "G at (%d,%d)", x, y)
			require.InDeltaf(t, wb, gb, tol, "B at (%d,%d)", x, y)
			if want.HasAlpha() && got.HasAlpha() {
				require.InDeltaf(t, wa, ga, tol, "A at (%d,%d)", x, y)
			}
		}
	}
}
