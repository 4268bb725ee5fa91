package filter

import (
	"testing"

	"github.com/gogpu/texconv"
)

// Test helpers shared across filter tests.

// solid creates a 4x4 RGBA buffer filled with one colour.
func solid(t *testing.T, r, g, b, a float32) *texconv.Buffer {
	t.Helper()
	buf, err := texconv.NewFilled(4, 4, r, g, b, a)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

// gradient creates an RGBA buffer with every channel varying, alpha included.
func gradient(t *testing.T, w, h int) *texconv.Buffer {
	t.Helper()
	buf, err := texconv.NewBuffer(w, h, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := range h {
		for x := range w {
			fx := float32(x) / float32(w-1)
			fy := float32(y) / float32(h-1)
			buf.Set(x, y, fx, fy, 1-fx*fy, 0.25+0.5*fx)
		}
	}
	return buf
}

// firstPixel returns the RGBA of the pixel at (0, 0).
func firstPixel(buf *texconv.Buffer) [4]float32 {
	r, g, b, a := buf.At(0, 0)
	return [4]float32{r, g, b, a}
}

// absf32 returns the absolute value of a float32.
func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// checkPixel fails the test when got differs from want by more than tol.
func checkPixel(t *testing.T, name string, got, want [4]float32, tol float32) {
	t.Helper()
	for c := range 4 {
		if absf32(got[c]-want[c]) > tol {
			t.Errorf("%s: pixel = %v, want %v (tolerance %v)", name, got, want, tol)
			return
		}
	}
}

// clampUnit clamps v to [0, 1].
func clampUnit(v float32) float32 {
	return min(max(v, 0), 1)
}
