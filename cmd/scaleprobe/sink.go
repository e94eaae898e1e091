package main

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/filter"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/types"
)

// sink pretends to be the next stage of the chain.
type sink struct {
	caps map[pixfmt.ID]types.Capability
}

var _ filter.Next = (*sink)(nil)

func newSink(accept, acceptHW []string) (*sink, error) {
	s := &sink{}
	if len(accept) == 0 && len(acceptHW) == 0 {
		return s, nil
	}
	s.caps = map[pixfmt.ID]types.Capability{}
	for _, list := range []struct {
		names []string
		caps  types.Capability
	}{
		{accept, types.CapabilitySupported},
		{acceptHW, types.CapabilitySupported | types.CapabilitySupportedByHW},
	} {
		for _, name := range list.names {
			var id pixfmt.ID
			if err := id.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("invalid accepted format: %w", err)
			}
			s.caps[id] |= list.caps
		}
	}
	return s, nil
}

func (s *sink) QueryFormat(_ context.Context, id pixfmt.ID) types.Capability {
	if s.caps == nil {
		return types.CapabilitySupported
	}
	return s.caps[id]
}

func (s *sink) Reconfig(ctx context.Context, params types.ImageParams) error {
	logger.Debugf(ctx, "sink configured for %s", params)
	return nil
}

func (s *sink) Control(_ context.Context, req filter.Request) error {
	return filter.ErrUnknownControl{Request: req}
}
