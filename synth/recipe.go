package synth

// Recipe returns suggested material settings for textures produced in the
// given mode, one line per entry.
func Recipe(mode Mode) []string {
	if mode == ModePhong {
		return []string{
			"Balanced starting point for Phong materials:",
			`  $phongboost 5`,
			`  $phongalbedotint 1`,
			`  $phongfresnelranges "[0.5 1 2]"`,
			`  $phongalbedoboost 55 (if applicable and not using the $color2 method)`,
			"When the metal map is written to the colour alpha channel, also set:",
			`  $color2 "[.18 .18 .18]"`,
			`  $blendtintbybasealpha 1`,
			"Avoid combining $color2 and $blendtintbybasealpha with $phongalbedoboost.",
			"With an envmap:",
			`  $envmaptint "[.12 .12 .12]"`,
		}
	}
	return []string{
		"PBR outputs:",
		"  _color: diffuse with its alpha channel",
		"  _mrao: metal (R), roughness (G), ambient occlusion (B)",
		"  _normal: normal map in the engine layout",
		"  _emissive: emissive, when configured",
	}
}
