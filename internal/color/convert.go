package color

// u8ToUnitLUT maps every byte value to its [0, 1] float.
// Decoders hit this once per channel per pixel.
var u8ToUnitLUT [256]float32

func init() {
	for i := range 256 {
		u8ToUnitLUT[i] = float32(i) / 255.0
	}
}

// U8ToUnit converts a byte component [0,255] to float32 [0,1].
func U8ToUnit(v uint8) float32 {
	return u8ToUnitLUT[v]
}

// U16ToUnit converts a 16-bit component [0,65535] to float32 [0,1].
func U16ToUnit(v uint16) float32 {
	return float32(v) / 65535.0
}

// UnitToU8 clamps a float32 to [0,1] and converts to uint8 with rounding.
func UnitToU8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
