// axis.go decodes the compact per-axis size encoding.

// Package geometry resolves user-requested output sizes against the
// geometry of the source stream.
package geometry

import (
	"fmt"
)

// AxisKind tells how the size of one axis is obtained.
type AxisKind int

const (
	// AxisAbsolute is a literal pixel count.
	AxisAbsolute = AxisKind(iota)

	// AxisFromSource copies the decoded size of the source.
	AxisFromSource

	// AxisFromDisplay copies the display size of the source.
	AxisFromDisplay

	// AxisRelativeSource derives the size from the other axis, keeping
	// the aspect ratio of the decoded source picture.
	AxisRelativeSource

	// AxisRelativeDisplay derives the size from the other axis, keeping
	// the display aspect ratio of the source.
	AxisRelativeDisplay
)

func (k AxisKind) String() string {
	switch k {
	case AxisAbsolute:
		return "absolute"
	case AxisFromSource:
		return "source"
	case AxisFromDisplay:
		return "display"
	case AxisRelativeSource:
		return "relative-source"
	case AxisRelativeDisplay:
		return "relative-display"
	}
	return fmt.Sprintf("AxisKind(%d)", int(k))
}

const (
	rawRelativeSource  = -3
	rawRelativeDisplay = -2
	rawFromSource      = -1
	rawFromDisplay     = 0

	// rawRoundOffset is folded into the raw value to request 16-alignment.
	rawRoundOffset = 8
)

// MinRawValue is the smallest raw value accepted by DecodeAxis.
const MinRawValue = rawRelativeSource - rawRoundOffset

// Axis is the decoded form of one raw dimension value.
type Axis struct {
	Kind AxisKind

	// Value is only meaningful for AxisAbsolute.
	Value int

	RoundTo16 bool
}

func (a Axis) IsRelative() bool {
	return a.Kind == AxisRelativeSource || a.Kind == AxisRelativeDisplay
}

func (a Axis) String() string {
	var s string
	if a.Kind == AxisAbsolute {
		s = fmt.Sprintf("%d", a.Value)
	} else {
		s = a.Kind.String()
	}
	if a.RoundTo16 {
		s += "/16"
	}
	return s
}

// Raw returns the compact integer encoding of the axis.
func (a Axis) Raw() int {
	var v int
	switch a.Kind {
	case AxisAbsolute:
		v = a.Value
	case AxisFromSource:
		v = rawFromSource
	case AxisFromDisplay:
		v = rawFromDisplay
	case AxisRelativeSource:
		v = rawRelativeSource
	case AxisRelativeDisplay:
		v = rawRelativeDisplay
	}
	if a.RoundTo16 {
		v -= rawRoundOffset
	}
	return v
}

// DecodeAxis decodes a single raw value. Values <= -8 request alignment
// to 16 and are decoded as value+8; after that the value must be >= -3.
func DecodeAxis(raw int) (Axis, error) {
	var a Axis
	v := raw
	if v <= -rawRoundOffset {
		v += rawRoundOffset
		a.RoundTo16 = true
	}
	switch {
	case v < rawRelativeSource:
		return Axis{}, fmt.Errorf("value %d is out of range [%d, +inf)", raw, MinRawValue)
	case v == rawRelativeSource:
		a.Kind = AxisRelativeSource
	case v == rawRelativeDisplay:
		a.Kind = AxisRelativeDisplay
	case v == rawFromSource:
		a.Kind = AxisFromSource
	case v == rawFromDisplay:
		a.Kind = AxisFromDisplay
	default:
		a.Kind = AxisAbsolute
		a.Value = v
	}
	return a, nil
}
