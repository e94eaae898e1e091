package scaler

import (
	"github.com/xaionaro-go/avscale/types"
)

// ApplyColorspacePolicy finalizes the colour interpretation of dst for a
// conversion from src. Declared values survive only a YUV to YUV
// conversion; in every other case they are re-guessed from dst itself.
func ApplyColorspacePolicy(src types.ImageParams, dst *types.ImageParams) {
	if !isYUV(src) || !isYUV(*dst) {
		dst.ColorSpace = types.ColorSpaceAuto
		dst.ColorLevels = types.ColorLevelsAuto
	}
	dst.GuessColorspace()
}

func isYUV(p types.ImageParams) bool {
	desc, ok := p.PixelFormat.Descriptor()
	return ok && desc.IsYUV()
}
