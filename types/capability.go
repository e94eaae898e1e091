// capability.go defines the answer of a format capability query.

// Package types provides common types shared by the scale stage packages.
package types

import (
	"strings"
)

// Capability is a bit set describing how a stage accepts a pixel format.
type Capability uint8

const (
	CapabilityNone = Capability(0)

	// CapabilitySupported means the format is accepted, possibly at the
	// cost of a conversion somewhere down the chain.
	CapabilitySupported = Capability(1 << 0)

	// CapabilitySupportedByHW means the format is consumed directly, with
	// zero conversion cost.
	CapabilitySupportedByHW = Capability(1 << 1)
)

func (c Capability) IsSupported() bool {
	return c&(CapabilitySupported|CapabilitySupportedByHW) != 0
}

func (c Capability) IsSupportedByHW() bool {
	return c&CapabilitySupportedByHW != 0
}

// WithoutHW drops the zero-cost claim, keeping the rest of the bits.
func (c Capability) WithoutHW() Capability {
	return c &^ CapabilitySupportedByHW
}

func (c Capability) String() string {
	if c == CapabilityNone {
		return "none"
	}
	var parts []string
	if c&CapabilitySupported != 0 {
		parts = append(parts, "supported")
	}
	if c&CapabilitySupportedByHW != 0 {
		parts = append(parts, "supported_by_hw")
	}
	if rest := c &^ (CapabilitySupported | CapabilitySupportedByHW); rest != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}
