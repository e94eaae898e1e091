// negotiator.go implements the pixel format negotiation of the scale stage.

// Package negotiator chooses the output pixel format of the scale stage
// from what the scaling engine can produce and what the next stage takes.
package negotiator

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/types"
)

// Engine is the capability side of a scaling engine.
type Engine interface {
	SupportsInput(pixfmt.ID) bool
	SupportsOutput(pixfmt.ID) bool
}

// Downstream is the next stage of the chain.
type Downstream interface {
	QueryFormat(ctx context.Context, id pixfmt.ID) types.Capability
}

type Negotiator struct {
	Engine     Engine
	Downstream Downstream
}

func New(engine Engine, downstream Downstream) *Negotiator {
	return &Negotiator{
		Engine:     engine,
		Downstream: downstream,
	}
}

func (n *Negotiator) String() string {
	return fmt.Sprintf("Negotiator(%v)", n.Engine)
}

// QueryOutputCapability tells whether this stage can emit the format and
// how the next stage would take it.
func (n *Negotiator) QueryOutputCapability(
	ctx context.Context,
	id pixfmt.ID,
) types.Capability {
	if !id.IsValid() || !n.Engine.SupportsOutput(id) {
		return types.CapabilityNone
	}
	return n.Downstream.QueryFormat(ctx, id)
}

// FindBestOutputFormat returns the best output format for the given input
// format, or pixfmt.None if there is none.
//
// Candidates are tried in order: the input format itself, the preferred
// conversions from it, the generic format table, and, only if all of that
// yielded nothing, every known format. A zero-cost (hardware-direct)
// candidate ends the search; otherwise the first supported one wins.
func (n *Negotiator) FindBestOutputFormat(
	ctx context.Context,
	in pixfmt.ID,
) (_ret pixfmt.ID) {
	logger.Tracef(ctx, "FindBestOutputFormat(%s)", in)
	defer func() { logger.Tracef(ctx, "/FindBestOutputFormat(%s): %s", in, _ret) }()

	s := search{
		ctx:        ctx,
		negotiator: n,
		visited:    map[pixfmt.ID]struct{}{},
	}

	if s.try(in) {
		return s.best
	}
	for _, id := range pixfmt.ConversionsFrom(in) {
		if s.try(id) {
			return s.best
		}
	}
	for _, id := range pixfmt.FormatTable() {
		if s.try(id) {
			return s.best
		}
	}
	if s.best != pixfmt.None {
		return s.best
	}

	logger.Debugf(ctx, "no preferred output format for %s, trying everything else", in)
	for id := pixfmt.First; id < pixfmt.End; id++ {
		if s.try(id) {
			return s.best
		}
	}
	return s.best
}

// QueryFormat answers whether this stage accepts the given format as its
// input. It may claim zero conversion cost only if the format passes
// through unchanged.
func (n *Negotiator) QueryFormat(
	ctx context.Context,
	in pixfmt.ID,
) (_ret types.Capability) {
	logger.Tracef(ctx, "QueryFormat(%s)", in)
	defer func() { logger.Tracef(ctx, "/QueryFormat(%s): %s", in, _ret) }()

	desc, ok := in.Descriptor()
	if !ok || desc.IsHWAccel() {
		return types.CapabilityNone
	}
	if !n.Engine.SupportsInput(in) {
		return types.CapabilityNone
	}

	best := n.FindBestOutputFormat(ctx, in)
	if best == pixfmt.None {
		return types.CapabilityNone
	}

	caps := n.Downstream.QueryFormat(ctx, best)
	if !caps.IsSupported() {
		return types.CapabilityNone
	}
	if best != in {
		caps = caps.WithoutHW()
	}
	return caps
}

type search struct {
	ctx        context.Context
	negotiator *Negotiator
	visited    map[pixfmt.ID]struct{}
	best       pixfmt.ID
}

// try returns true when the candidate is consumed downstream at zero cost,
// which ends the search.
func (s *search) try(id pixfmt.ID) bool {
	if _, ok := s.visited[id]; ok {
		return false
	}
	s.visited[id] = struct{}{}

	caps := s.negotiator.QueryOutputCapability(s.ctx, id)
	logger.Tracef(s.ctx, "query(%s) -> %s", id, caps)
	if caps.IsSupportedByHW() {
		s.best = id
		return true
	}
	if caps.IsSupported() && s.best == pixfmt.None {
		s.best = id
	}
	return false
}
