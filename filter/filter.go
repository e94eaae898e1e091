// Package filter implements the scale stage of a video filter chain: it
// negotiates the pixel format with the next stage, resolves the output
// size and converts frames.
package filter

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/avscale/equalizer"
	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/geometry"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/negotiator"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
	"github.com/xaionaro-go/xsync"
)

// Next is the next stage of the chain.
type Next interface {
	QueryFormat(ctx context.Context, id pixfmt.ID) types.Capability
	Reconfig(ctx context.Context, params types.ImageParams) error
	Control(ctx context.Context, req Request) error
}

type Filter struct {
	locker xsync.Mutex

	Config     Config
	spec       geometry.Spec
	next       Next
	scaler     *scaler.Context
	negotiator *negotiator.Negotiator
	equalizer  *equalizer.Controller

	inParams  types.ImageParams
	outParams types.ImageParams
}

// New validates the configuration and creates the stage; the engine is
// owned by the stage from now on. next may be nil for the last stage.
func New(
	ctx context.Context,
	cfg Config,
	engine scaler.Engine,
	next Next,
) (_ret *Filter, _err error) {
	logger.Tracef(ctx, "New(%s, %s)", cfg, engine)
	defer func() { logger.Tracef(ctx, "/New(%s, %s): %v", cfg, engine, _err) }()

	if err := cfg.Validate(); err != nil {
		return nil, ErrConfiguration{Err: err}
	}
	spec, err := cfg.Spec()
	if err != nil {
		return nil, ErrConfiguration{Err: err}
	}

	sc := scaler.NewContext(engine)
	f := &Filter{
		Config: cfg,
		spec:   spec,
		next:   next,
		scaler: sc,
	}
	f.negotiator = negotiator.New(engine, f.downstream())
	f.equalizer = equalizer.New(sc)
	return f, nil
}

func (f *Filter) String() string {
	return fmt.Sprintf("Scale(%s)", f.spec)
}

type lastStage struct{}

func (lastStage) QueryFormat(context.Context, pixfmt.ID) types.Capability {
	return types.CapabilitySupported
}

func (f *Filter) downstream() negotiator.Downstream {
	if f.next == nil {
		return lastStage{}
	}
	return f.next
}

// QueryFormat tells the previous stage how this stage takes the format.
func (f *Filter) QueryFormat(
	ctx context.Context,
	id pixfmt.ID,
) types.Capability {
	return xsync.DoA2R1(xsync.WithNoLogging(ctx, true), &f.locker, f.negotiator.QueryFormat, ctx, id)
}

// Reconfig configures the stage for the input stream and returns the
// parameters of the output stream, which were also passed to the next
// stage.
func (f *Filter) Reconfig(
	ctx context.Context,
	in types.ImageParams,
) (types.ImageParams, error) {
	return xsync.DoA2R2(ctx, &f.locker, f.reconfigLocked, ctx, in)
}

func (f *Filter) reconfigLocked(
	ctx context.Context,
	in types.ImageParams,
) (_ret types.ImageParams, _err error) {
	logger.Tracef(ctx, "reconfigLocked(%s)", in)
	defer func() { logger.Tracef(ctx, "/reconfigLocked(%s): %s %v", in, _ret, _err) }()

	// no frames flow until the whole reconfiguration succeeds
	f.scaler.Invalidate()

	if err := in.Validate(); err != nil {
		return types.ImageParams{}, ErrConfiguration{Err: fmt.Errorf("invalid input: %w", err)}
	}

	best := f.negotiator.FindBestOutputFormat(ctx, in.PixelFormat)
	if best == pixfmt.None {
		return types.ImageParams{}, ErrConfiguration{Err: ErrNoOutputFormat{Input: in.PixelFormat}}
	}

	size, err := geometry.Resolve(ctx, f.spec, f.Config.NoUpscale, geometry.Source{
		Width:         in.Width,
		Height:        in.Height,
		DisplayWidth:  in.DisplayWidth,
		DisplayHeight: in.DisplayHeight,
	})
	if err != nil {
		return types.ImageParams{}, ErrConfiguration{Err: err}
	}

	out := in
	out.PixelFormat = best
	out.Width, out.Height = size.Width, size.Height
	out.DisplayWidth, out.DisplayHeight = size.DisplayWidth, size.DisplayHeight
	scaler.ApplyColorspacePolicy(in, &out)

	params := scaler.Params{
		Src:              in,
		Dst:              out,
		Quality:          [2]float64{f.Config.Param, f.Config.Param2},
		Algorithm:        f.Config.Algorithm,
		ChromaDrop:       f.Config.ChromaDrop,
		AccurateRounding: f.Config.AccurateRounding,
		ColorAdjust:      f.scaler.ColorAdjust(),
	}
	logger.Tracef(ctx, "scaler params: %s", spew.Sdump(params))
	if err := f.scaler.Reinit(ctx, params); err != nil {
		return types.ImageParams{}, ErrEngineInit{Err: err}
	}
	logger.Debugf(ctx, "%s: %s -> %s", f, in, out)

	if f.next != nil {
		if err := f.next.Reconfig(ctx, out); err != nil {
			f.scaler.Invalidate()
			return types.ImageParams{}, fmt.Errorf("unable to reconfigure the next stage for %s: %w", out, err)
		}
	}
	f.inParams, f.outParams = in, out
	return out, nil
}

// OutputParams returns the output parameters of the last successful
// reconfiguration.
func (f *Filter) OutputParams(ctx context.Context) types.ImageParams {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &f.locker, func() types.ImageParams {
		return f.outParams
	})
}

// FilterFrame converts the frame; the stage takes ownership of in.
func (f *Filter) FilterFrame(
	ctx context.Context,
	in *frame.Frame,
) (*frame.Frame, error) {
	return xsync.DoA2R2(xsync.WithNoLogging(ctx, true), &f.locker, f.scaler.Scale, ctx, in)
}

// Control handles the picture equalizer requests for brightness,
// contrast and saturation; everything else goes to the next stage.
func (f *Filter) Control(
	ctx context.Context,
	req Request,
) error {
	handled, err := xsync.DoA2R2(ctx, &f.locker, f.controlLocked, ctx, req)
	if handled {
		return err
	}
	if f.next == nil {
		return ErrUnknownControl{Request: req}
	}
	return f.next.Control(ctx, req)
}

func (f *Filter) controlLocked(
	ctx context.Context,
	req Request,
) (_handled bool, _err error) {
	logger.Tracef(ctx, "controlLocked(%s)", req)
	defer func() { logger.Tracef(ctx, "/controlLocked(%s): %t %v", req, _handled, _err) }()

	switch req := req.(type) {
	case *GetEqualizer:
		item, ok := equalizer.ParseItem(req.Item)
		if !ok {
			return false, nil
		}
		v, err := f.equalizer.Get(item)
		if err != nil {
			return true, err
		}
		req.Value = v
		return true, nil
	case SetEqualizer:
		item, ok := equalizer.ParseItem(req.Item)
		if !ok {
			return false, nil
		}
		return true, f.equalizer.Set(ctx, item, req.Value)
	case *SetEqualizer:
		return f.controlLocked(ctx, *req)
	}
	return false, nil
}

func (f *Filter) Close(ctx context.Context) error {
	return xsync.DoA1R1(ctx, &f.locker, f.scaler.Close, ctx)
}
