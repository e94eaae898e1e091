package scaler

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/logger"
)

// Context is the scaling state of one stage: the engine and the last
// parameters it was successfully initialized with.
//
// Context is not safe for concurrent use.
type Context struct {
	Engine Engine

	params      Params
	colorAdjust ColorAdjust
	ready       bool
}

func NewContext(engine Engine) *Context {
	return &Context{
		Engine:      engine,
		colorAdjust: NeutralColorAdjust(),
	}
}

func (c *Context) String() string {
	if !c.ready {
		return fmt.Sprintf("ScalerContext(%s, not ready)", c.Engine)
	}
	return fmt.Sprintf("ScalerContext(%s, %s)", c.Engine, c.params)
}

// IsReady reports whether the last Reinit succeeded.
func (c *Context) IsReady() bool {
	return c.ready
}

// Params returns the parameters of the last successful Reinit.
func (c *Context) Params() Params {
	return c.params
}

// Reinit applies params as a whole. On failure the context stays unusable
// for scaling until a later successful Reinit.
func (c *Context) Reinit(
	ctx context.Context,
	params Params,
) (_err error) {
	logger.Tracef(ctx, "Reinit(%s)", params)
	defer func() { logger.Tracef(ctx, "/Reinit(%s): %v", params, _err) }()

	c.ready = false
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if err := c.Engine.Reinit(ctx, params); err != nil {
		return fmt.Errorf("unable to reinitialize %s: %w", c.Engine, err)
	}
	c.params = params
	c.colorAdjust = params.ColorAdjust
	c.ready = true
	return nil
}

// Invalidate makes Scale fail until the next successful Reinit; the
// parameters and the colour adjustment are kept.
func (c *Context) Invalidate() {
	c.ready = false
}

// ColorAdjust returns the colour adjustment to be used by the next Reinit.
func (c *Context) ColorAdjust() ColorAdjust {
	return c.colorAdjust
}

// SetColorAdjust updates the colour adjustment and, if the context is
// ready, reinitializes the engine right away. If that fails, the previous
// adjustment is restored and reapplied, and the original error is
// returned.
func (c *Context) SetColorAdjust(
	ctx context.Context,
	adj ColorAdjust,
) (_err error) {
	logger.Tracef(ctx, "SetColorAdjust(%s)", adj)
	defer func() { logger.Tracef(ctx, "/SetColorAdjust(%s): %v", adj, _err) }()

	if !c.ready {
		c.colorAdjust = adj
		c.params.ColorAdjust = adj
		return nil
	}

	oldParams := c.params
	newParams := oldParams
	newParams.ColorAdjust = adj
	err := c.Reinit(ctx, newParams)
	if err == nil {
		return nil
	}

	logger.Debugf(ctx, "unable to apply colour adjustment %s, rolling back to %s: %v", adj, oldParams.ColorAdjust, err)
	if rollbackErr := c.Reinit(ctx, oldParams); rollbackErr != nil {
		logger.Errorf(ctx, "unable to roll back colour adjustment to %s: %v", oldParams.ColorAdjust, rollbackErr)
		c.colorAdjust = oldParams.ColorAdjust
		c.params = oldParams
		return errors.Join(err, fmt.Errorf("unable to roll back: %w", rollbackErr))
	}
	return err
}

// Scale converts src into a newly allocated frame. The context takes
// ownership of src and returns it to frame.Pool in any case; src pixel
// data is not modified.
func (c *Context) Scale(
	ctx context.Context,
	src *frame.Frame,
) (_ret *frame.Frame, _err error) {
	logger.Tracef(ctx, "Scale(%s)", src)
	defer func() { logger.Tracef(ctx, "/Scale(%s): %v", src, _err) }()
	defer frame.Release(src)

	if !c.ready {
		return nil, ErrNotInitialized{Engine: c.Engine}
	}
	if !sameLayout(src, c.params) {
		return nil, ErrFrameMismatch{Expected: c.params.Src, Actual: src.Params}
	}

	dst, err := frame.New(c.params.Dst)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate the destination frame: %w", err)
	}
	frame.CopyAttributes(dst, src)

	if err := c.Engine.Scale(ctx, dst, src); err != nil {
		frame.Release(dst)
		return nil, fmt.Errorf("unable to scale %s with %s: %w", src, c.Engine, err)
	}
	return dst, nil
}

func sameLayout(f *frame.Frame, params Params) bool {
	return f.Params.PixelFormat == params.Src.PixelFormat &&
		f.Params.Width == params.Src.Width &&
		f.Params.Height == params.Src.Height
}

func (c *Context) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	c.ready = false
	return c.Engine.Close(ctx)
}
