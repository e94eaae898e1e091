// Package scaler drives a scaling engine on behalf of the scale stage:
// it owns the engine parameters, reinitializes the engine as a whole and
// converts frames with it.
package scaler

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/types"
)

// ParamDefault is the value of a quality parameter left unset; engines
// then use their own default for the algorithm.
const ParamDefault = 123456

// Engine is a pixel format and size converter.
type Engine interface {
	fmt.Stringer

	SupportsInput(pixfmt.ID) bool
	SupportsOutput(pixfmt.ID) bool

	// Reinit applies the parameters as a whole; after a failure the
	// engine must not be used until a successful Reinit.
	Reinit(ctx context.Context, params Params) error

	// Scale converts src into dst; both must match the last Reinit.
	Scale(ctx context.Context, dst, src *frame.Frame) error

	Close(ctx context.Context) error
}

type Params struct {
	Src types.ImageParams
	Dst types.ImageParams

	// Quality holds the algorithm tuning values, each either ParamDefault
	// or within [0, 100].
	Quality [2]float64

	Algorithm        Algorithm
	ChromaDrop       int
	AccurateRounding bool
	ColorAdjust      ColorAdjust
}

func (p Params) String() string {
	return fmt.Sprintf(
		"%s -> %s (%s, q:%v, chr-drop:%d, arnd:%t, eq:%s)",
		p.Src, p.Dst, p.Algorithm, p.Quality, p.ChromaDrop, p.AccurateRounding, p.ColorAdjust,
	)
}

func (p Params) Validate() error {
	if err := p.Src.Validate(); err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	if err := p.Dst.Validate(); err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	for idx, q := range p.Quality {
		if q == ParamDefault {
			continue
		}
		if q < 0 || q > 100 {
			return fmt.Errorf("quality parameter #%d is out of range [0, 100]: %v", idx, q)
		}
	}
	if !p.Algorithm.IsValid() {
		return fmt.Errorf("invalid algorithm: %v", p.Algorithm)
	}
	if p.ChromaDrop < 0 || p.ChromaDrop > 3 {
		return fmt.Errorf("chroma drop level is out of range [0, 3]: %d", p.ChromaDrop)
	}
	return nil
}

// IsQualitySet reports whether the quality parameter idx was given
// explicitly.
func (p Params) IsQualitySet(idx int) bool {
	return p.Quality[idx] != ParamDefault
}
