package filter

import (
	"fmt"
)

// Request is a control request travelling along the chain. Requests with
// a response are passed by pointer and filled in by the handler.
type Request interface {
	fmt.Stringer
}

// GetEqualizer asks for the current value of a picture equalizer item,
// in percent.
type GetEqualizer struct {
	Item  string
	Value int
}

func (r *GetEqualizer) String() string {
	return fmt.Sprintf("GetEqualizer(%s)", r.Item)
}

// SetEqualizer sets a picture equalizer item, in percent.
type SetEqualizer struct {
	Item  string
	Value int
}

func (r SetEqualizer) String() string {
	return fmt.Sprintf("SetEqualizer(%s=%d)", r.Item, r.Value)
}
