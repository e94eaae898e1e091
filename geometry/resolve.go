package geometry

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	"github.com/xaionaro-go/avscale/logger"
)

// AntiUpscale is the number of axes that must grow for the output size to
// be discarded in favour of the source size; zero disables the check.
type AntiUpscale int

const (
	AntiUpscaleDisabled = AntiUpscale(0)
	AntiUpscaleAnyAxis  = AntiUpscale(1)
	AntiUpscaleBothAxes = AntiUpscale(2)
)

func (u AntiUpscale) Validate() error {
	if u < AntiUpscaleDisabled || u > AntiUpscaleBothAxes {
		return fmt.Errorf("anti-upscale threshold %d is out of range [0, 2]", int(u))
	}
	return nil
}

// Source is the geometry of the incoming stream.
type Source struct {
	Width         int
	Height        int
	DisplayWidth  int
	DisplayHeight int
}

func (s Source) String() string {
	return fmt.Sprintf("%dx%d[%dx%d]", s.Width, s.Height, s.DisplayWidth, s.DisplayHeight)
}

func (s Source) Validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.DisplayWidth <= 0 || s.DisplayHeight <= 0 {
		return ErrInvalidSource{Source: s}
	}
	return nil
}

// Result is the concrete output geometry.
type Result struct {
	Width         int
	Height        int
	DisplayWidth  int
	DisplayHeight int
}

func (r Result) String() string {
	return fmt.Sprintf("%dx%d[%dx%d]", r.Width, r.Height, r.DisplayWidth, r.DisplayHeight)
}

// Resolve computes the output pixel and display sizes.
func Resolve(
	ctx context.Context,
	spec Spec,
	antiUpscale AntiUpscale,
	src Source,
) (_ret Result, _err error) {
	logger.Tracef(ctx, "Resolve(%s, %d, %s)", spec, antiUpscale, src)
	defer func() { logger.Tracef(ctx, "/Resolve(%s, %d, %s): %s %v", spec, antiUpscale, src, _ret, _err) }()

	if err := spec.Validate(); err != nil {
		return Result{}, ErrInvalidSpec{RawWidth: spec.Width.Raw(), RawHeight: spec.Height.Raw(), Err: err}
	}
	if err := antiUpscale.Validate(); err != nil {
		return Result{}, err
	}
	if err := src.Validate(); err != nil {
		return Result{}, err
	}

	// the relative axis (at most one) refers to the other one, so it goes last
	w, wOK := resolveDirect(spec.Width, src.Width, src.DisplayWidth)
	h, hOK := resolveDirect(spec.Height, src.Height, src.DisplayHeight)
	var ok bool
	if !wOK {
		if w, ok = resolveRelative(spec.Width.Kind, h, src.Width, src.Height, src.DisplayWidth, src.DisplayHeight); !ok {
			return Result{}, ErrSizeOverflow{Axis: "width"}
		}
	}
	if !hOK {
		if h, ok = resolveRelative(spec.Height.Kind, w, src.Height, src.Width, src.DisplayHeight, src.DisplayWidth); !ok {
			return Result{}, ErrSizeOverflow{Axis: "height"}
		}
	}

	if spec.Width.RoundTo16 {
		if w, ok = roundTo16(w); !ok {
			return Result{}, ErrSizeOverflow{Axis: "width"}
		}
	}
	if spec.Height.RoundTo16 {
		if h, ok = roundTo16(h); !ok {
			return Result{}, ErrSizeOverflow{Axis: "height"}
		}
	}

	if antiUpscale > AntiUpscaleDisabled {
		grown := 0
		if w > int64(src.Width) {
			grown++
		}
		if h > int64(src.Height) {
			grown++
		}
		if grown >= int(antiUpscale) {
			logger.Debugf(ctx, "%d axes would be upscaled (%dx%d -> %dx%d), keeping the source size", grown, src.Width, src.Height, w, h)
			w, h = int64(src.Width), int64(src.Height)
		}
	}

	if w <= 0 || h <= 0 {
		return Result{}, ErrNonPositiveResult{Width: int(w), Height: int(h)}
	}

	dw, dh, err := DisplaySize(int(w), int(h), src.DisplayWidth, src.DisplayHeight)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Width:         int(w),
		Height:        int(h),
		DisplayWidth:  dw,
		DisplayHeight: dh,
	}, nil
}

func resolveDirect(a Axis, decoded, display int) (int64, bool) {
	switch a.Kind {
	case AxisAbsolute:
		return int64(a.Value), true
	case AxisFromSource:
		return int64(decoded), true
	case AxisFromDisplay:
		return int64(display), true
	}
	return 0, false
}

func resolveRelative(
	kind AxisKind,
	other int64,
	srcThis, srcOther int,
	srcDisplayThis, srcDisplayOther int,
) (int64, bool) {
	if kind == AxisRelativeDisplay {
		return mulDiv(other, int64(srcDisplayThis), int64(srcDisplayOther))
	}
	return mulDiv(other, int64(srcThis), int64(srcOther))
}

// mulDiv returns a*b/c for non-negative a, b and positive c, computing the
// product in 128 bits; ok is false if the quotient does not fit into int.
func mulDiv(a, b, c int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi >= uint64(c) {
		return 0, false
	}
	q, _ := bits.Div64(hi, lo, uint64(c))
	if q > math.MaxInt {
		return 0, false
	}
	return int64(q), true
}

// mulLess reports whether a*b < c*d for non-negative operands.
func mulLess(a, b, c, d int64) bool {
	hi0, lo0 := bits.Mul64(uint64(a), uint64(b))
	hi1, lo1 := bits.Mul64(uint64(c), uint64(d))
	if hi0 != hi1 {
		return hi0 < hi1
	}
	return lo0 < lo1
}

func roundTo16(v int64) (int64, bool) {
	if v > math.MaxInt-8 {
		return 0, false
	}
	return ((v + 8) / 16) * 16, true
}

// DisplaySize computes the display size of a picture of size w x h, so
// that the source display aspect is kept and the display size on the
// binding axis equals the pixel size.
func DisplaySize(w, h, srcDisplayW, srcDisplayH int) (int, int, error) {
	w64, h64 := int64(w), int64(h)
	sdw, sdh := int64(srcDisplayW), int64(srcDisplayH)
	if mulLess(w64, sdh, h64, sdw) {
		dw, ok := mulDiv(h64, sdw, sdh)
		if !ok {
			return 0, 0, ErrSizeOverflow{Axis: "display width"}
		}
		return int(dw), h, nil
	}
	dh, ok := mulDiv(w64, sdh, sdw)
	if !ok {
		return 0, 0, ErrSizeOverflow{Axis: "display height"}
	}
	return w, int(dh), nil
}
