// Package internal holds helpers shared by the packages of this module.
package internal

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/logger"
)

// Assert panics (through the context logger) if an invariant is broken;
// it is meant for programming errors, not for invalid input.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	format string,
	args ...any,
) {
	if mustBeTrue {
		return
	}
	msg := "assertion failed: " + fmt.Sprintf(format, args...)
	logger.Panic(ctx, msg)
	panic(msg)
}
