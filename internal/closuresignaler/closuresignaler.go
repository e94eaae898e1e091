// Package closuresignaler tracks whether a resource was closed, and lets
// waiters observe the closure through a channel.
package closuresignaler

import (
	"context"
	"sync"

	"github.com/xaionaro-go/avscale/logger"
)

type ClosureSignaler struct {
	closeOnce sync.Once
	c         chan struct{}
}

func New() *ClosureSignaler {
	return &ClosureSignaler{
		c: make(chan struct{}),
	}
}

// CloseChan is closed once Close is called.
func (c *ClosureSignaler) CloseChan() <-chan struct{} {
	return c.c
}

// Close marks the resource closed; it reports whether this call was the
// one that closed it.
func (c *ClosureSignaler) Close(ctx context.Context) bool {
	closedNow := false
	c.closeOnce.Do(func() {
		logger.Debugf(ctx, "closing")
		close(c.c)
		closedNow = true
	})
	return closedNow
}

func (c *ClosureSignaler) IsClosed() bool {
	select {
	case <-c.c:
		return true
	default:
		return false
	}
}
