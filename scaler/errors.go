package scaler

import (
	"fmt"

	"github.com/xaionaro-go/avscale/types"
)

// ErrNotInitialized is returned by Scale until the context was
// successfully reinitialized.
type ErrNotInitialized struct {
	Engine Engine
}

func (e ErrNotInitialized) Error() string {
	if e.Engine == nil {
		return "the scaler is not initialized"
	}
	return fmt.Sprintf("the scaler %s is not initialized", e.Engine)
}

// ErrFrameMismatch is returned by Scale when a frame does not match the
// configured source.
type ErrFrameMismatch struct {
	Expected types.ImageParams
	Actual   types.ImageParams
}

func (e ErrFrameMismatch) Error() string {
	return fmt.Sprintf("the frame is %s, while the scaler is configured for %s", e.Actual, e.Expected)
}
