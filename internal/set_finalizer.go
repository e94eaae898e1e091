package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/avscale/logger"
)

// SetFinalizerFree makes the garbage collector release the C-side
// resources of freer if it was never freed explicitly.
func SetFinalizerFree[T interface{ Free() }](
	ctx context.Context,
	freer T,
) {
	runtime.SetFinalizer(freer, func(freer T) {
		logger.Debugf(ctx, "freeing %T", freer)
		freer.Free()
	})
}

// ClearFinalizer undoes SetFinalizerFree before an explicit Free.
func ClearFinalizer[T any](obj T) {
	runtime.SetFinalizer(obj, nil)
}
