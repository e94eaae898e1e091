// image_params.go defines the stream parameters exchanged on reconfiguration.

package types

import (
	"fmt"

	"github.com/xaionaro-go/avscale/pixfmt"
)

// ImageParams describes a video stream: its raster layout, the decoded
// picture size, the intended display size, and colour interpretation.
type ImageParams struct {
	PixelFormat   pixfmt.ID   `yaml:"pixel_format"`
	Width         int         `yaml:"width"`
	Height        int         `yaml:"height"`
	DisplayWidth  int         `yaml:"display_width"`
	DisplayHeight int         `yaml:"display_height"`
	ColorSpace    ColorSpace  `yaml:"colorspace"`
	ColorLevels   ColorLevels `yaml:"color_levels"`
}

func (p ImageParams) String() string {
	return fmt.Sprintf(
		"%dx%d[%dx%d]:%s:%s:%s",
		p.Width, p.Height,
		p.DisplayWidth, p.DisplayHeight,
		p.PixelFormat, p.ColorSpace, p.ColorLevels,
	)
}

func (p ImageParams) Resolution() Resolution {
	return Resolution{Width: p.Width, Height: p.Height}
}

func (p ImageParams) DisplayResolution() Resolution {
	return Resolution{Width: p.DisplayWidth, Height: p.DisplayHeight}
}

func (p ImageParams) Validate() error {
	if !p.PixelFormat.IsValid() {
		return fmt.Errorf("invalid pixel format: %v", p.PixelFormat)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid picture size: %dx%d", p.Width, p.Height)
	}
	if p.DisplayWidth <= 0 || p.DisplayHeight <= 0 {
		return fmt.Errorf("invalid display size: %dx%d", p.DisplayWidth, p.DisplayHeight)
	}
	return nil
}

// GuessColorspace fills in colorspace and levels that are left to "auto",
// and overrides values that make no sense for the pixel format family.
func (p *ImageParams) GuessColorspace() {
	desc, ok := p.PixelFormat.Descriptor()
	if !ok {
		return
	}
	switch {
	case desc.IsYUV():
		if !p.ColorSpace.IsYUV() {
			p.ColorSpace = guessYUVColorSpace(p.Width, p.Height)
		}
		if p.ColorLevels == ColorLevelsAuto {
			if desc.Flags.Has(pixfmt.FlagFullRange) {
				p.ColorLevels = ColorLevelsPC
			} else {
				p.ColorLevels = ColorLevelsTV
			}
		}
	case desc.IsXYZ():
		p.ColorSpace = ColorSpaceXYZ
		p.ColorLevels = ColorLevelsPC
	case desc.IsRGB(), desc.IsGray(), desc.Flags.Has(pixfmt.FlagPaletted):
		p.ColorSpace = ColorSpaceRGB
		p.ColorLevels = ColorLevelsPC
	}
}

func guessYUVColorSpace(width, height int) ColorSpace {
	if width >= 1280 || height > 576 {
		return ColorSpaceBT709
	}
	return ColorSpaceBT601
}
