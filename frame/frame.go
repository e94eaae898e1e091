// frame.go defines the raw video frame passed through the scale stage.

// Package frame provides pooled raw video frames with tightly packed planes.
package frame

import (
	"fmt"

	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/types"
)

// Frame is a raw video picture. All planes live back to back in Buffer,
// each with a line size of exactly the bytes a row needs (alignment 1).
type Frame struct {
	Params types.ImageParams
	Buffer []byte

	PTS      int64
	PktDTS   int64
	Duration int64
	TimeBase types.Rational

	Keyframe      bool
	Interlaced    bool
	TopFieldFirst bool
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame(%s pts:%d)", f.Params, f.PTS)
}

func (f *Frame) descriptor() pixfmt.Descriptor {
	desc, _ := f.Params.PixelFormat.Descriptor()
	return desc
}

func (f *Frame) NumPlanes() int {
	return f.descriptor().NumPlanes
}

// Stride returns the line size of plane i.
func (f *Frame) Stride(i int) int {
	stride, _ := f.descriptor().PlaneGeometry(i, f.Params.Width, f.Params.Height)
	return stride
}

// Plane returns the bytes of plane i; it aliases Buffer.
func (f *Frame) Plane(i int) []byte {
	desc := f.descriptor()
	offset := 0
	for p := 0; p < i; p++ {
		stride, rows := desc.PlaneGeometry(p, f.Params.Width, f.Params.Height)
		offset += stride * rows
	}
	stride, rows := desc.PlaneGeometry(i, f.Params.Width, f.Params.Height)
	return f.Buffer[offset : offset+stride*rows]
}

func (f *Frame) reset() {
	f.Params = types.ImageParams{}
	f.Buffer = f.Buffer[:0]
	f.PTS = 0
	f.PktDTS = 0
	f.Duration = 0
	f.TimeBase = types.Rational{}
	f.Keyframe = false
	f.Interlaced = false
	f.TopFieldFirst = false
}

// CopyAttributes copies the frame-level metadata (timing, field order,
// picture type) from src to dst. Colour interpretation is copied only
// where dst leaves it to auto, and only when both frames are of the same
// family (YUV or not).
func CopyAttributes(dst, src *Frame) {
	dst.PTS = src.PTS
	dst.PktDTS = src.PktDTS
	dst.Duration = src.Duration
	dst.TimeBase = src.TimeBase
	dst.Keyframe = src.Keyframe
	dst.Interlaced = src.Interlaced
	dst.TopFieldFirst = src.TopFieldFirst

	if dst.descriptor().IsYUV() != src.descriptor().IsYUV() {
		return
	}
	if dst.Params.ColorSpace == types.ColorSpaceAuto {
		dst.Params.ColorSpace = src.Params.ColorSpace
	}
	if dst.Params.ColorLevels == types.ColorLevelsAuto {
		dst.Params.ColorLevels = src.Params.ColorLevels
	}
}
