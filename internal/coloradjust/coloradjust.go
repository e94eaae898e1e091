// Package coloradjust applies the picture equalizer (brightness, contrast
// and saturation) in place to 8-bit planar YUV and gray frames.
package coloradjust

import (
	"context"
	"fmt"
	"math"

	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/internal"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
)

// Supported reports whether Apply can handle frames of the format.
func Supported(id pixfmt.ID) bool {
	desc, ok := id.Descriptor()
	if !ok || desc.Depth != 8 {
		return false
	}
	switch {
	case desc.IsYUV():
		return desc.Flags.Has(pixfmt.FlagPlanar) && desc.NumPlanes >= 3
	case desc.IsGray():
		return desc.NumPlanes == 1 && desc.Planes[0].BitsPerPixel == 8
	}
	return false
}

// Apply adjusts the frame in place. The alpha plane, if any, is kept.
func Apply(
	ctx context.Context,
	f *frame.Frame,
	adj scaler.ColorAdjust,
) error {
	if adj.IsNeutral() {
		return nil
	}
	if !Supported(f.Params.PixelFormat) {
		return fmt.Errorf("colour adjustment of %s frames is not supported", f.Params.PixelFormat)
	}
	desc, _ := f.Params.PixelFormat.Descriptor()
	internal.Assert(
		ctx,
		len(f.Buffer) == desc.BufferSize(f.Params.Width, f.Params.Height),
		"buffer of %s is %d bytes", f, len(f.Buffer),
	)

	luma := LumaTable(adj, isFullRange(f.Params, desc))
	applyTable(f.Plane(0), &luma)
	if desc.IsGray() {
		return nil
	}
	chroma := ChromaTable(adj)
	applyTable(f.Plane(1), &chroma)
	applyTable(f.Plane(2), &chroma)
	return nil
}

func isFullRange(p types.ImageParams, desc pixfmt.Descriptor) bool {
	switch {
	case desc.IsGray(), desc.Flags.Has(pixfmt.FlagFullRange):
		return true
	case p.ColorLevels == types.ColorLevelsPC:
		return true
	}
	return false
}

// LumaTable maps an input luma value to the adjusted one: contrast scales
// around black, brightness shifts by a fraction of the nominal range.
func LumaTable(adj scaler.ColorAdjust, fullRange bool) [256]uint8 {
	black, span := 16.0, 219.0
	if fullRange {
		black, span = 0, 255
	}
	c := adj.ContrastFloat64()
	b := adj.BrightnessFloat64()

	var table [256]uint8
	for v := range table {
		table[v] = clamp(black + (float64(v)-black)*c + b*span)
	}
	return table
}

// ChromaTable maps an input chroma value to the adjusted one; the gain is
// contrast times saturation around the neutral 128.
func ChromaTable(adj scaler.ColorAdjust) [256]uint8 {
	gain := adj.ContrastFloat64() * adj.SaturationFloat64()

	var table [256]uint8
	for v := range table {
		table[v] = clamp(128 + (float64(v)-128)*gain)
	}
	return table
}

func applyTable(plane []byte, table *[256]uint8) {
	for idx, v := range plane {
		plane[idx] = table[v]
	}
}

func clamp(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
