// Package goscale implements scaler.Engine in pure Go on top of
// golang.org/x/image/draw, for the common 8-bit formats.
package goscale

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/internal/closuresignaler"
	"github.com/xaionaro-go/avscale/internal/coloradjust"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
	"golang.org/x/image/draw"
)

type planeScaler struct {
	scaler draw.Scaler
	src    int
	dst    int
	drop   int
	levels *[256]uint8
}

type Engine struct {
	params  scaler.Params
	ready   bool
	closure *closuresignaler.ClosureSignaler

	// planar path, used between YUV and gray formats
	planes     []planeScaler
	fillChroma bool

	// RGBA path, used for everything else
	rgba    draw.Scaler
	srcRGBA *image.NRGBA
	dstRGBA *image.RGBA
}

var _ scaler.Engine = (*Engine)(nil)

func New() *Engine {
	return &Engine{
		closure: closuresignaler.New(),
	}
}

func (e *Engine) String() string {
	if !e.ready {
		return "GoScaler"
	}
	return fmt.Sprintf(
		"GoScaler(%dx%d:%s -> %dx%d:%s)",
		e.params.Src.Width, e.params.Src.Height, e.params.Src.PixelFormat,
		e.params.Dst.Width, e.params.Dst.Height, e.params.Dst.PixelFormat,
	)
}

func (e *Engine) SupportsInput(id pixfmt.ID) bool {
	return kindOf(id) != kindUnsupported
}

func (e *Engine) SupportsOutput(id pixfmt.ID) bool {
	return kindOf(id) != kindUnsupported
}

func (e *Engine) Reinit(
	ctx context.Context,
	params scaler.Params,
) (_err error) {
	logger.Tracef(ctx, "Reinit(%s)", params)
	defer func() { logger.Tracef(ctx, "/Reinit(%s): %v", params, _err) }()

	if e.closure.IsClosed() {
		return fmt.Errorf("the engine is closed")
	}
	e.ready = false
	e.planes = nil
	e.rgba = nil

	srcKind, dstKind := kindOf(params.Src.PixelFormat), kindOf(params.Dst.PixelFormat)
	if srcKind == kindUnsupported {
		return fmt.Errorf("unsupported source format %s", params.Src.PixelFormat)
	}
	if dstKind == kindUnsupported {
		return fmt.Errorf("unsupported destination format %s", params.Dst.PixelFormat)
	}
	if params.AccurateRounding {
		logger.Debugf(ctx, "accurate rounding is implied: samples are computed in floating point")
	}

	luma, chroma := interpolators(params)
	if srcKind != kindRGB && dstKind != kindRGB {
		e.initPlanar(params, luma, chroma)
	} else {
		e.initRGBA(params, luma)
	}
	e.params = params
	e.ready = true
	return nil
}

func (e *Engine) initPlanar(
	params scaler.Params,
	luma, chroma draw.Interpolator,
) {
	srcDesc, _ := params.Src.PixelFormat.Descriptor()
	dstDesc, _ := params.Dst.PixelFormat.Descriptor()
	srcFull := matrixFor(params.Src).fullRange || srcDesc.IsGray()
	dstFull := matrixFor(params.Dst).fullRange || dstDesc.IsGray()

	_, sh := srcDesc.PlaneGeometry(0, params.Src.Width, params.Src.Height)
	_, dh := dstDesc.PlaneGeometry(0, params.Dst.Width, params.Dst.Height)
	e.planes = append(e.planes, planeScaler{
		scaler: newScaler(luma, params.Dst.Width, dh, params.Src.Width, sh),
		src:    0,
		dst:    0,
		levels: levelsTable(srcFull, dstFull, false),
	})

	e.fillChroma = srcDesc.IsGray() && dstDesc.IsYUV()
	if !srcDesc.IsYUV() || !dstDesc.IsYUV() {
		return
	}
	sw, sh := srcDesc.PlaneGeometry(1, params.Src.Width, params.Src.Height)
	sh = (sh + (1 << params.ChromaDrop) - 1) >> params.ChromaDrop
	dw, dh := dstDesc.PlaneGeometry(1, params.Dst.Width, params.Dst.Height)
	levels := levelsTable(srcFull, dstFull, true)
	for i := 1; i <= 2; i++ {
		e.planes = append(e.planes, planeScaler{
			scaler: newScaler(chroma, dw, dh, sw, sh),
			src:    i,
			dst:    i,
			drop:   params.ChromaDrop,
			levels: levels,
		})
	}
}

func (e *Engine) initRGBA(
	params scaler.Params,
	interp draw.Interpolator,
) {
	e.rgba = newScaler(interp, params.Dst.Width, params.Dst.Height, params.Src.Width, params.Src.Height)
	e.srcRGBA = image.NewNRGBA(image.Rect(0, 0, params.Src.Width, params.Src.Height))
	e.dstRGBA = image.NewRGBA(image.Rect(0, 0, params.Dst.Width, params.Dst.Height))
}

func (e *Engine) Scale(
	ctx context.Context,
	dst, src *frame.Frame,
) (_err error) {
	logger.Tracef(ctx, "Scale(%s -> %s)", src, dst)
	defer func() { logger.Tracef(ctx, "/Scale(%s -> %s): %v", src, dst, _err) }()

	if !e.ready {
		return scaler.ErrNotInitialized{Engine: e}
	}

	if e.rgba == nil {
		e.scalePlanar(dst, src)
		return coloradjust.Apply(ctx, dst, e.params.ColorAdjust)
	}

	decode(e.srcRGBA, src, e.params.ChromaDrop)
	e.rgba.Scale(e.dstRGBA, e.dstRGBA.Rect, e.srcRGBA, e.srcRGBA.Rect, draw.Src, nil)
	if kindOf(dst.Params.PixelFormat) != kindRGB {
		encode(dst, e.dstRGBA)
		return coloradjust.Apply(ctx, dst, e.params.ColorAdjust)
	}
	encode(dst, e.adjustRGBA(e.dstRGBA))
	return nil
}

func (e *Engine) scalePlanar(dst, src *frame.Frame) {
	for _, p := range e.planes {
		s := planeImage(src, p.src, p.drop)
		d := planeImage(dst, p.dst, 0)
		p.scaler.Scale(d, d.Rect, s, s.Rect, draw.Src, nil)
		if p.levels != nil {
			for idx, v := range d.Pix {
				d.Pix[idx] = p.levels[v]
			}
		}
	}
	if e.fillChroma {
		for i := 1; i <= 2; i++ {
			plane := dst.Plane(i)
			for idx := range plane {
				plane[idx] = 128
			}
		}
	}
}

func (e *Engine) adjustRGBA(img *image.RGBA) *image.RGBA {
	adj := e.params.ColorAdjust
	if adj.IsNeutral() {
		return img
	}
	if adj.Contrast != scaler.ColorAdjustOne {
		img = adjust.Contrast(img, adj.ContrastFloat64()-1)
	}
	if adj.Brightness != 0 {
		img = adjust.Brightness(img, adj.BrightnessFloat64())
	}
	if adj.Saturation != scaler.ColorAdjustOne {
		img = adjust.Saturation(img, adj.SaturationFloat64()-1)
	}
	return img
}

func (e *Engine) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	e.ready = false
	e.closure.Close(ctx)
	e.planes = nil
	e.rgba = nil
	e.srcRGBA = nil
	e.dstRGBA = nil
	return nil
}
