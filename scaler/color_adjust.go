package scaler

import (
	"fmt"
)

// ColorAdjustOne is 1.0 in the 16-fractional-bit fixed point used by
// ColorAdjust.
const ColorAdjustOne = 1 << 16

// ColorAdjust is the picture equalizer state in 16.16 fixed point.
// Brightness is an offset in units of the full range, Contrast and
// Saturation are gains.
type ColorAdjust struct {
	Brightness int32
	Contrast   int32
	Saturation int32
}

func NeutralColorAdjust() ColorAdjust {
	return ColorAdjust{
		Brightness: 0,
		Contrast:   ColorAdjustOne,
		Saturation: ColorAdjustOne,
	}
}

func (a ColorAdjust) IsNeutral() bool {
	return a == NeutralColorAdjust()
}

func (a ColorAdjust) String() string {
	return fmt.Sprintf("b:%d/c:%d/s:%d", a.Brightness, a.Contrast, a.Saturation)
}

func (a ColorAdjust) BrightnessFloat64() float64 {
	return float64(a.Brightness) / ColorAdjustOne
}

func (a ColorAdjust) ContrastFloat64() float64 {
	return float64(a.Contrast) / ColorAdjustOne
}

func (a ColorAdjust) SaturationFloat64() float64 {
	return float64(a.Saturation) / ColorAdjustOne
}
