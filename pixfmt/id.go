// id.go defines the pixel format identifiers known to the scale stage.

// Package pixfmt describes raster layouts: identifiers, descriptors and
// the read-only preference tables used during format negotiation.
package pixfmt

import (
	"fmt"
	"strings"
)

// ID is an opaque identifier of a raster layout and colour model.
//
// IDs form a dense range [First, End), which allows callers to
// exhaustively walk every known format.
type ID int

const (
	None = ID(iota)

	YUV420P
	YUV422P
	YUV444P
	YUV410P
	YUV411P
	YUV440P
	YUVJ420P
	YUVJ422P
	YUVJ444P
	YUVJ440P
	YUVA420P

	YUV420P9LE
	YUV420P9BE
	YUV420P10LE
	YUV420P10BE
	YUV420P12LE
	YUV420P12BE
	YUV420P14LE
	YUV420P14BE
	YUV420P16LE
	YUV420P16BE
	YUV422P9LE
	YUV422P9BE
	YUV422P10LE
	YUV422P10BE
	YUV422P12LE
	YUV422P12BE
	YUV422P14LE
	YUV422P14BE
	YUV422P16LE
	YUV422P16BE
	YUV444P9LE
	YUV444P9BE
	YUV444P10LE
	YUV444P10BE
	YUV444P12LE
	YUV444P12BE
	YUV444P14LE
	YUV444P14BE
	YUV444P16LE
	YUV444P16BE

	NV12
	NV21
	YUYV422
	UYVY422

	RGB24
	BGR24
	RGBA
	BGRA
	ARGB
	ABGR
	RGB0
	BGR0
	RGB48LE
	RGB48BE
	RGB565LE
	BGR565LE
	RGB555LE
	BGR555LE
	RGB444LE
	BGR444LE
	RGB8
	BGR8
	RGB4
	BGR4
	RGB4Byte
	BGR4Byte
	GBRP

	Gray8
	Gray16LE
	Gray16BE
	MonoWhite
	MonoBlack
	PAL8

	XYZ12LE
	XYZ12BE

	VDPAU
	VAAPI
	CUDA
	VideoToolbox
	MediaCodec
	D3D11
	DRMPrime
	QSV
	Vulkan

	End
)

// First is the lowest valid format identifier.
const First = None + 1

func (id ID) IsValid() bool {
	return id >= First && id < End
}

func (id ID) String() string {
	if !id.IsValid() {
		if id == None {
			return "none"
		}
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return descriptors[id].Name
}

// Descriptor returns the static description of the format; the second
// value is false for None and out-of-range identifiers.
func (id ID) Descriptor() (Descriptor, bool) {
	if !id.IsValid() {
		return Descriptor{}, false
	}
	return descriptors[id], true
}

// FromString returns the format with the given FFmpeg-style name, or None.
func FromString(s string) ID {
	return byName[strings.ToLower(strings.TrimSpace(s))]
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	v := FromString(string(b))
	if v == None {
		return fmt.Errorf("unknown pixel format: '%s'", b)
	}
	*id = v
	return nil
}

// All returns every known format identifier in ascending order.
func All() []ID {
	result := make([]ID, 0, int(End-First))
	for id := First; id < End; id++ {
		result = append(result, id)
	}
	return result
}

var byName = func() map[string]ID {
	m := make(map[string]ID, int(End))
	for id := First; id < End; id++ {
		m[descriptors[id].Name] = id
	}
	return m
}()
