// Package software implements scaler.Engine on top of libswscale.
package software

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/internal"
	"github.com/xaionaro-go/avscale/internal/closuresignaler"
	"github.com/xaionaro-go/avscale/internal/coloradjust"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
)

const (
	// libswscale flag bits that go-astiav has no named constants for.
	flagAccurateRounding = astiav.SoftwareScaleContextFlag(0x40000)
	chromaDropShift      = 16

	probeSize = 16
)

type Engine struct {
	inputSupport  map[pixfmt.ID]bool
	outputSupport map[pixfmt.ID]bool

	params      scaler.Params
	swsCtx      *astiav.SoftwareScaleContext
	srcFrame    *astiav.Frame
	dstFrame    *astiav.Frame
	colorAdjust bool
	closure     *closuresignaler.ClosureSignaler
}

var _ scaler.Engine = (*Engine)(nil)

func New() *Engine {
	return &Engine{
		inputSupport:  map[pixfmt.ID]bool{},
		outputSupport: map[pixfmt.ID]bool{},
		closure:       closuresignaler.New(),
	}
}

func (e *Engine) String() string {
	if e.swsCtx == nil {
		return "SoftwareScaler"
	}
	return fmt.Sprintf(
		"SoftwareScaler(%dx%d:%s -> %dx%d:%s)",
		e.swsCtx.SourceWidth(),
		e.swsCtx.SourceHeight(),
		e.swsCtx.SourcePixelFormat(),
		e.swsCtx.DestinationWidth(),
		e.swsCtx.DestinationHeight(),
		e.swsCtx.DestinationPixelFormat(),
	)
}

// PixelFormat returns the libav counterpart of id, or
// astiav.PixelFormatNone if there is none.
func PixelFormat(id pixfmt.ID) astiav.PixelFormat {
	if !id.IsValid() {
		return astiav.PixelFormatNone
	}
	return astiav.FindPixelFormatByName(id.String())
}

func (e *Engine) SupportsInput(id pixfmt.ID) bool {
	return probe(e.inputSupport, id, func(f astiav.PixelFormat) error {
		return tryContext(f, astiav.PixelFormatYuv420P)
	})
}

func (e *Engine) SupportsOutput(id pixfmt.ID) bool {
	return probe(e.outputSupport, id, func(f astiav.PixelFormat) error {
		return tryContext(astiav.PixelFormatYuv420P, f)
	})
}

func probe(
	cache map[pixfmt.ID]bool,
	id pixfmt.ID,
	try func(astiav.PixelFormat) error,
) bool {
	if v, ok := cache[id]; ok {
		return v
	}
	result := false
	if desc, ok := id.Descriptor(); ok && !desc.IsHWAccel() {
		if f := PixelFormat(id); f != astiav.PixelFormatNone {
			result = try(f) == nil
		}
	}
	cache[id] = result
	return result
}

func descriptor(id pixfmt.ID) pixfmt.Descriptor {
	desc, _ := id.Descriptor()
	return desc
}

func tryContext(src, dst astiav.PixelFormat) error {
	swsCtx, err := astiav.CreateSoftwareScaleContext(
		probeSize, probeSize, src,
		probeSize, probeSize, dst,
		astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagPoint),
	)
	if err != nil {
		return err
	}
	swsCtx.Free()
	return nil
}

func algorithmFlag(a scaler.Algorithm) (astiav.SoftwareScaleContextFlag, error) {
	switch a {
	case scaler.AlgorithmBicubic:
		return astiav.SoftwareScaleContextFlagBicubic, nil
	case scaler.AlgorithmFastBilinear:
		return astiav.SoftwareScaleContextFlagFastBilinear, nil
	case scaler.AlgorithmBilinear:
		return astiav.SoftwareScaleContextFlagBilinear, nil
	case scaler.AlgorithmExperimental:
		return astiav.SoftwareScaleContextFlagX, nil
	case scaler.AlgorithmPoint:
		return astiav.SoftwareScaleContextFlagPoint, nil
	case scaler.AlgorithmArea:
		return astiav.SoftwareScaleContextFlagArea, nil
	case scaler.AlgorithmBicublin:
		return astiav.SoftwareScaleContextFlagBicublin, nil
	case scaler.AlgorithmGauss:
		return astiav.SoftwareScaleContextFlagGauss, nil
	case scaler.AlgorithmSinc:
		return astiav.SoftwareScaleContextFlagSinc, nil
	case scaler.AlgorithmLanczos:
		return astiav.SoftwareScaleContextFlagLanczos, nil
	case scaler.AlgorithmSpline:
		return astiav.SoftwareScaleContextFlagSpline, nil
	}
	return 0, fmt.Errorf("unknown algorithm %v", a)
}

// Flags returns the libswscale flags for the parameters.
func Flags(params scaler.Params) (astiav.SoftwareScaleContextFlags, error) {
	algo, err := algorithmFlag(params.Algorithm)
	if err != nil {
		return 0, err
	}
	flags := []astiav.SoftwareScaleContextFlag{algo}
	if params.AccurateRounding {
		flags = append(flags, flagAccurateRounding)
	}
	if params.ChromaDrop > 0 {
		flags = append(flags, astiav.SoftwareScaleContextFlag(params.ChromaDrop<<chromaDropShift))
	}
	return astiav.NewSoftwareScaleContextFlags(flags...), nil
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
	e.release(ctx)

	srcFmt := PixelFormat(params.Src.PixelFormat)
	dstFmt := PixelFormat(params.Dst.PixelFormat)
	if srcFmt == astiav.PixelFormatNone || !e.SupportsInput(params.Src.PixelFormat) {
		return fmt.Errorf("unsupported source format %s", params.Src.PixelFormat)
	}
	if dstFmt == astiav.PixelFormatNone || !e.SupportsOutput(params.Dst.PixelFormat) {
		return fmt.Errorf("unsupported destination format %s", params.Dst.PixelFormat)
	}
	applyAdjust := !params.ColorAdjust.IsNeutral()
	if applyAdjust && !coloradjust.Supported(params.Dst.PixelFormat) {
		return fmt.Errorf("colour adjustment is not supported for %s output", params.Dst.PixelFormat)
	}
	if srcDesc, dstDesc := descriptor(params.Src.PixelFormat), descriptor(params.Dst.PixelFormat); srcDesc.IsYUV() != dstDesc.IsYUV() {
		logger.Debugf(ctx, "libswscale colorspace details are not settable through go-astiav, the default matrix is used instead of %s/%s -> %s/%s",
			params.Src.ColorSpace, params.Src.ColorLevels, params.Dst.ColorSpace, params.Dst.ColorLevels)
	}
	if params.IsQualitySet(0) || params.IsQualitySet(1) {
		logger.Debugf(ctx, "libswscale algorithm parameters are not settable through go-astiav, using the defaults instead of %v", params.Quality)
	}

	flags, err := Flags(params)
	if err != nil {
		return err
	}

	swsCtx, err := astiav.CreateSoftwareScaleContext(
		params.Src.Width, params.Src.Height, srcFmt,
		params.Dst.Width, params.Dst.Height, dstFmt,
		flags,
	)
	if err != nil {
		return fmt.Errorf("unable to create a software scale context: %w", err)
	}

	srcFrame, err := newFrame(params.Src.Width, params.Src.Height, srcFmt)
	if err != nil {
		swsCtx.Free()
		return fmt.Errorf("unable to allocate the source frame: %w", err)
	}
	dstFrame, err := newFrame(params.Dst.Width, params.Dst.Height, dstFmt)
	if err != nil {
		swsCtx.Free()
		srcFrame.Free()
		return fmt.Errorf("unable to allocate the destination frame: %w", err)
	}

	internal.SetFinalizerFree(ctx, swsCtx)
	internal.SetFinalizerFree(ctx, srcFrame)
	internal.SetFinalizerFree(ctx, dstFrame)
	e.params = params
	e.swsCtx = swsCtx
	e.srcFrame = srcFrame
	e.dstFrame = dstFrame
	e.colorAdjust = applyAdjust
	return nil
}

func newFrame(
	width, height int,
	pixFmt astiav.PixelFormat,
) (*astiav.Frame, error) {
	f := astiav.AllocFrame()
	f.SetWidth(width)
	f.SetHeight(height)
	f.SetPixelFormat(pixFmt)
	if err := f.AllocBuffer(0); err != nil {
		f.Free()
		return nil, err
	}
	return f, nil
}

func (e *Engine) Scale(
	ctx context.Context,
	dst, src *frame.Frame,
) (_err error) {
	logger.Tracef(ctx, "Scale(%s -> %s)", src, dst)
	defer func() { logger.Tracef(ctx, "/Scale(%s -> %s): %v", src, dst, _err) }()

	if e.swsCtx == nil {
		return scaler.ErrNotInitialized{Engine: e}
	}
	if err := e.srcFrame.MakeWritable(); err != nil {
		return fmt.Errorf("unable to make the source frame writable: %w", err)
	}
	if err := e.srcFrame.Data().SetBytes(src.Buffer, 1); err != nil {
		return fmt.Errorf("unable to load the source picture: %w", err)
	}
	if err := e.dstFrame.MakeWritable(); err != nil {
		return fmt.Errorf("unable to make the destination frame writable: %w", err)
	}
	if err := e.swsCtx.ScaleFrame(e.srcFrame, e.dstFrame); err != nil {
		return fmt.Errorf("unable to scale a frame: %w", err)
	}
	n, err := e.dstFrame.ImageCopyToBuffer(dst.Buffer, 1)
	if err != nil {
		return fmt.Errorf("unable to store the destination picture: %w", err)
	}
	internal.Assert(ctx, n == len(dst.Buffer), "copied %d bytes into a %d byte buffer", n, len(dst.Buffer))

	if e.colorAdjust {
		if err := coloradjust.Apply(ctx, dst, e.params.ColorAdjust); err != nil {
			return fmt.Errorf("unable to adjust colours: %w", err)
		}
	}
	return nil
}

func (e *Engine) release(ctx context.Context) {
	if e.swsCtx != nil {
		logger.Debugf(ctx, "releasing %s", e)
		internal.ClearFinalizer(e.swsCtx)
		e.swsCtx.Free()
		e.swsCtx = nil
	}
	for _, f := range []**astiav.Frame{&e.srcFrame, &e.dstFrame} {
		if *f == nil {
			continue
		}
		internal.ClearFinalizer(*f)
		(*f).Free()
		*f = nil
	}
}

func (e *Engine) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	e.release(ctx)
	e.closure.Close(ctx)
	return nil
}
