// pool.go implements allocation of frames from a shared pool.

package frame

import (
	"fmt"

	"github.com/xaionaro-go/avscale/pool"
	"github.com/xaionaro-go/avscale/types"
)

var Pool = pool.NewPool(
	func() *Frame { return &Frame{} },
	(*Frame).reset,
	nil,
)

// New returns a frame from Pool with a buffer sized for params. The
// buffer content is unspecified.
func New(params types.ImageParams) (*Frame, error) {
	desc, ok := params.PixelFormat.Descriptor()
	if !ok {
		return nil, fmt.Errorf("unknown pixel format %v", params.PixelFormat)
	}
	if desc.IsHWAccel() {
		return nil, fmt.Errorf("pixel format %v is opaque to software", params.PixelFormat)
	}
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", params.Width, params.Height)
	}

	size := desc.BufferSize(params.Width, params.Height)
	f := Pool.Get()
	f.Params = params
	if cap(f.Buffer) >= size {
		f.Buffer = f.Buffer[:size]
	} else {
		f.Buffer = make([]byte, size)
	}
	return f, nil
}

// Release returns the frame to Pool; f must not be used afterwards.
func Release(f *Frame) {
	Pool.Put(f)
}
