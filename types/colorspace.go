// colorspace.go defines the colour matrix and level range enums.

package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type ColorSpace int

const (
	ColorSpaceAuto = ColorSpace(iota)
	ColorSpaceBT601
	ColorSpaceBT709
	ColorSpaceSMPTE240M
	ColorSpaceBT2020NC
	ColorSpaceBT2020C
	ColorSpaceRGB
	ColorSpaceXYZ
	endOfColorSpace
)

func (cs ColorSpace) String() string {
	switch cs {
	case ColorSpaceAuto:
		return "auto"
	case ColorSpaceBT601:
		return "bt601"
	case ColorSpaceBT709:
		return "bt709"
	case ColorSpaceSMPTE240M:
		return "smpte240m"
	case ColorSpaceBT2020NC:
		return "bt2020nc"
	case ColorSpaceBT2020C:
		return "bt2020c"
	case ColorSpaceRGB:
		return "rgb"
	case ColorSpaceXYZ:
		return "xyz"
	}
	return fmt.Sprintf("ColorSpace(%d)", int(cs))
}

// IsYUV reports whether the value names a YUV matrix (not auto, RGB or XYZ).
func (cs ColorSpace) IsYUV() bool {
	switch cs {
	case ColorSpaceBT601, ColorSpaceBT709, ColorSpaceSMPTE240M, ColorSpaceBT2020NC, ColorSpaceBT2020C:
		return true
	}
	return false
}

func ColorSpaceFromString(s string) (ColorSpace, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for cs := range endOfColorSpace {
		if cs.String() == s {
			return cs, nil
		}
	}
	return ColorSpaceAuto, fmt.Errorf("unknown colorspace: '%s'", s)
}

func (cs *ColorSpace) UnmarshalYAML(value *yaml.Node) error {
	v, err := ColorSpaceFromString(value.Value)
	if err != nil {
		return err
	}
	*cs = v
	return nil
}

func (cs ColorSpace) MarshalYAML() (any, error) {
	return cs.String(), nil
}

type ColorLevels int

const (
	ColorLevelsAuto = ColorLevels(iota)

	// ColorLevelsTV is the limited range (16-235 for 8-bit luma).
	ColorLevelsTV

	// ColorLevelsPC is the full range.
	ColorLevelsPC
	endOfColorLevels
)

func (l ColorLevels) String() string {
	switch l {
	case ColorLevelsAuto:
		return "auto"
	case ColorLevelsTV:
		return "tv"
	case ColorLevelsPC:
		return "pc"
	}
	return fmt.Sprintf("ColorLevels(%d)", int(l))
}

func ColorLevelsFromString(s string) (ColorLevels, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l := range endOfColorLevels {
		if l.String() == s {
			return l, nil
		}
	}
	return ColorLevelsAuto, fmt.Errorf("unknown color levels: '%s'", s)
}

func (l *ColorLevels) UnmarshalYAML(value *yaml.Node) error {
	v, err := ColorLevelsFromString(value.Value)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

func (l ColorLevels) MarshalYAML() (any, error) {
	return l.String(), nil
}
