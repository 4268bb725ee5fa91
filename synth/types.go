package synth

import (
	"fmt"
	"strings"
)

// Mode selects which texture set a conversion produces.
type Mode int

const (
	// ModePBR produces color, mrao, normal and optional emissive maps.
	ModePBR Mode = iota
	// ModePhong produces diffuse, normal, exponent and optional emissive maps.
	ModePhong
)

var modeNames = []string{"PBR", "PHONG"}

func (m Mode) String() string { return enumString("Mode", int(m), modeNames) }

// ParseMode parses "PBR" or "PHONG", ignoring case.
func ParseMode(s string) (Mode, error) {
	v, err := parseEnum("mode", s, modeNames)
	return Mode(v), err
}

// NormalType describes the channel layout of a source normal map.
type NormalType int

const (
	// NormalDefault is a DirectX-style map, copied as is.
	NormalDefault NormalType = iota
	// NormalRed is a swizzled map storing X in alpha and Z in red.
	NormalRed
	// NormalYellow has its green channel flipped.
	NormalYellow
	// NormalOpenGL is an OpenGL-style map; green is flipped.
	NormalOpenGL
)

var normalTypeNames = []string{"DEFAULT", "RED", "YELLOW", "OPENGL"}

func (t NormalType) String() string { return enumString("NormalType", int(t), normalTypeNames) }

// ParseNormalType parses DEFAULT, RED, YELLOW or OPENGL, ignoring case.
func ParseNormalType(s string) (NormalType, error) {
	v, err := parseEnum("normal type", s, normalTypeNames)
	return NormalType(v), err
}

// ColorAlphaMode controls how the metal map is baked into the Phong
// diffuse output.
type ColorAlphaMode int

const (
	// ColorAlphaNone leaves the diffuse colour alone; alpha comes from the alpha map.
	ColorAlphaNone ColorAlphaMode = iota
	// ColorAlphaAlpha writes metal into the diffuse alpha channel.
	ColorAlphaAlpha
	// ColorAlphaRGBAlpha darkens and resaturates metal areas of the diffuse colour.
	ColorAlphaRGBAlpha
)

var colorAlphaModeNames = []string{"NONE", "ALPHA", "RGB_ALPHA"}

func (m ColorAlphaMode) String() string {
	return enumString("ColorAlphaMode", int(m), colorAlphaModeNames)
}

// ParseColorAlphaMode parses NONE, ALPHA or RGB_ALPHA, ignoring case.
func ParseColorAlphaMode(s string) (ColorAlphaMode, error) {
	v, err := parseEnum("color alpha mode", s, colorAlphaModeNames)
	return ColorAlphaMode(v), err
}

// Channel selects what a single-channel map reads from its source image.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	// ChannelA reads alpha; a source without alpha yields 1.
	ChannelA
	// ChannelAverage reads the mean of R, G and B.
	ChannelAverage
	// ChannelColor uses the whole image. Only emissive maps accept it.
	ChannelColor
)

var channelNames = []string{"R", "G", "B", "A", "AVERAGE", "COLOR"}

func (c Channel) String() string { return enumString("Channel", int(c), channelNames) }

// ParseChannel parses R, G, B, A, AVERAGE or COLOR, ignoring case.
// An empty string selects R.
func ParseChannel(s string) (Channel, error) {
	if s == "" {
		return ChannelR, nil
	}
	v, err := parseEnum("channel", s, channelNames)
	return Channel(v), err
}

func enumString(kind string, v int, names []string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, v)
	}
	return names[v]
}

func parseEnum(kind, s string, names []string) (int, error) {
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("synth: unknown %s %q (want one of %s)", kind, s, strings.Join(names, ", "))
}

func validEnum(v, n int) bool { return v >= 0 && v < n }
