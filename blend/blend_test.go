package blend

import (
	"errors"
	"testing"

	"github.com/gogpu/texconv"
)

func filled(t *testing.T, r, g, b, a float32) *texconv.Buffer {
	t.Helper()
	buf, err := texconv.NewFilled(3, 2, r, g, b, a)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func rgbaAt(buf *texconv.Buffer) [4]float32 {
	r, g, b, a := buf.At(1, 1)
	return [4]float32{r, g, b, a}
}

func TestBlendModes(t *testing.T) {
	src := [4]float32{0.2, 0.5, 0.8, 0.4}
	layer := [4]float32{0.5, 0.5, 0.5, 1}

	tests := []struct {
		mode    Mode
		opacity float32
		want    [4]float32
	}{
		{ModeAdd, 1, [4]float32{0.7, 1, 1, 0.4}},
		{ModeSubtract, 1, [4]float32{0, 0, 0.3, 0.4}},
		{ModeMultiply, 1, [4]float32{0.1, 0.25, 0.4, 0.4}},
		{ModeDivide, 1, [4]float32{0.4, 1, 1, 0.4}},
		{ModeScreen, 1, [4]float32{0.6, 0.75, 0.9, 0.4}},
		{ModeOverlay, 1, [4]float32{0.2, 0.5, 0.8, 0.4}},
		{ModeMultiply, 0.5, [4]float32{0.15, 0.375, 0.6, 0.4}},
		{ModeAdd, 0, [4]float32{0.2, 0.5, 0.8, 0.4}},
		{ModeScreen, 2, [4]float32{0.6, 0.75, 0.9, 0.4}}, // opacity clamps to 1
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			out, err := Blend(tt.mode, filled(t, src[0], src[1], src[2], src[3]),
				filled(t, layer[0], layer[1], layer[2], layer[3]), tt.opacity)
			if err != nil {
				t.Fatal(err)
			}
			got := rgbaAt(out)
			for c := range 4 {
				if absf32(got[c]-tt.want[c]) > 1e-5 {
					t.Fatalf("%v opacity %v = %v, want %v", tt.mode, tt.opacity, got, tt.want)
				}
			}
		})
	}
}

func TestBlendIdentities(t *testing.T) {
	src := filled(t, 0.1, 0.45, 0.9, 0.6)
	tests := []struct {
		name  string
		fn    func(src, layer *texconv.Buffer, opacity float32) (*texconv.Buffer, error)
		layer [3]float32
	}{
		{"multiply white", Multiply, [3]float32{1, 1, 1}},
		{"add black", Add, [3]float32{0, 0, 0}},
		{"subtract black", Subtract, [3]float32{0, 0, 0}},
		{"screen black", Screen, [3]float32{0, 0, 0}},
		{"divide white", Divide, [3]float32{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.fn(src, filled(t, tt.layer[0], tt.layer[1], tt.layer[2], 1), 1)
			if err != nil {
				t.Fatal(err)
			}
			for i, v := range out.Data() {
				if absf32(v-src.Data()[i]) > 1e-6 {
					t.Fatalf("Data()[%d] = %v, want %v", i, v, src.Data()[i])
				}
			}
		})
	}
}

func TestBlendDivideByBlack(t *testing.T) {
	out, err := Divide(filled(t, 0.5, 0, 1, 1), filled(t, 0, 0, 0, 1), 1)
	if err != nil {
		t.Fatal(err)
	}
	got := rgbaAt(out)
	if got != [4]float32{1, 0, 1, 1} {
		t.Errorf("Divide by black = %v, want [1 0 1 1]", got)
	}
}

func TestBlendOpacityPathsAgree(t *testing.T) {
	src := filled(t, 0.3, 0.6, 0.9, 1)
	layer := filled(t, 0.25, 0.75, 0.1, 1)
	for mode := ModeAdd; mode <= ModeOverlay; mode++ {
		full, err := Blend(mode, src, layer, 1)
		if err != nil {
			t.Fatal(err)
		}
		almost, err := Blend(mode, src, layer, 0.9999999)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range full.Data() {
			if absf32(v-almost.Data()[i]) > 1e-5 {
				t.Errorf("%v: Data()[%d] = %v at full opacity, %v just below", mode, i, v, almost.Data()[i])
			}
		}
	}
}

func TestBlendMixedChannels(t *testing.T) {
	src, err := texconv.FromPixels(1, 1, 3, []float32{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	layer, err := texconv.FromPixels(1, 1, 4, []float32{0.5, 0.5, 0.5, 0})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Multiply(src, layer, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.Channels() != 3 {
		t.Fatalf("Channels() = %d, want 3", out.Channels())
	}
	for i, v := range out.Data() {
		if absf32(v-0.25) > 1e-6 {
			t.Errorf("Data()[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestBlendSizeMismatch(t *testing.T) {
	small, err := texconv.NewFilled(2, 2, 1, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Overlay(filled(t, 0, 0, 0, 1), small, 1)
	if !errors.Is(err, texconv.ErrInvalidDimensions) {
		t.Fatalf("Overlay() error = %v, want ErrInvalidDimensions", err)
	}
	var dimErr *texconv.InvalidDimensionsError
	if !errors.As(err, &dimErr) || dimErr.Width != 2 || dimErr.WantWidth != 3 {
		t.Errorf("error = %#v, want width 2 against 3", err)
	}
}

func TestBlendInputsUnchanged(t *testing.T) {
	src := filled(t, 0.2, 0.4, 0.6, 1)
	layer := filled(t, 0.9, 0.9, 0.9, 1)
	before := append([]float32(nil), src.Data()...)
	if _, err := Screen(src, layer, 0.7); err != nil {
		t.Fatal(err)
	}
	for i, v := range src.Data() {
		if v != before[i] {
			t.Fatalf("src modified at %d", i)
		}
	}
}

func TestParseMode(t *testing.T) {
	for mode := ModeAdd; mode <= ModeOverlay; mode++ {
		got, err := ParseMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseMode(%q) = %v, %v", mode.String(), got, err)
		}
	}
	if got, err := ParseMode("MULTIPLY"); err != nil || got != ModeMultiply {
		t.Errorf("ParseMode(MULTIPLY) = %v, %v", got, err)
	}
	if _, err := ParseMode("dissolve"); err == nil {
		t.Error("ParseMode(dissolve) succeeded")
	}
	if _, err := Blend(Mode(42), filled(t, 0, 0, 0, 1), filled(t, 0, 0, 0, 1), 1); err == nil {
		t.Error("Blend(Mode(42)) succeeded")
	}
	if s := Mode(42).String(); s != "Mode(42)" {
		t.Errorf("String() = %q", s)
	}
}
