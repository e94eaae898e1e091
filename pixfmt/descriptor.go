// descriptor.go provides the static per-format descriptors.

package pixfmt

type Flags uint32

const (
	FlagYUV = Flags(1 << iota)
	FlagRGB
	FlagGray
	FlagPaletted
	FlagHWAccel
	FlagAlpha
	FlagPlanar
	FlagBigEndian
	FlagFullRange
	FlagXYZ
)

func (f Flags) Has(other Flags) bool {
	return f&other == other
}

const maxPlanes = 4

// Plane describes one buffer plane of a format.
type Plane struct {
	// BitsPerPixel is the storage cost of one sample position in the plane.
	BitsPerPixel int

	ShiftX uint8
	ShiftY uint8

	// FixedSize is set for planes whose size does not depend on the
	// picture dimensions (e.g. the palette of PAL8).
	FixedSize int
}

// Descriptor is a plain value: it can be copied and modified by callers
// without affecting the catalog.
type Descriptor struct {
	Name         string
	Flags        Flags
	Depth        int
	ChromaShiftX uint8
	ChromaShiftY uint8
	NumPlanes    int
	Planes       [maxPlanes]Plane
}

func (d Descriptor) IsYUV() bool     { return d.Flags.Has(FlagYUV) }
func (d Descriptor) IsRGB() bool     { return d.Flags.Has(FlagRGB) }
func (d Descriptor) IsGray() bool    { return d.Flags.Has(FlagGray) }
func (d Descriptor) IsHWAccel() bool { return d.Flags.Has(FlagHWAccel) }
func (d Descriptor) IsXYZ() bool     { return d.Flags.Has(FlagXYZ) }

func ceilShift(v int, shift uint8) int {
	return -((-v) >> shift)
}

// PlaneGeometry returns the tightly packed (1-byte aligned) line size and
// row count of plane i for a picture of the given size.
func (d Descriptor) PlaneGeometry(i, width, height int) (stride, rows int) {
	p := d.Planes[i]
	if p.FixedSize > 0 {
		return p.FixedSize, 1
	}
	w := ceilShift(width, p.ShiftX)
	return (w*p.BitsPerPixel + 7) / 8, ceilShift(height, p.ShiftY)
}

// BufferSize returns the size of a contiguous buffer holding all planes
// back to back, in the order FFmpeg copies them with alignment 1.
func (d Descriptor) BufferSize(width, height int) int {
	total := 0
	for i := 0; i < d.NumPlanes; i++ {
		stride, rows := d.PlaneGeometry(i, width, height)
		total += stride * rows
	}
	return total
}

func yuvPlanar(name string, shiftX, shiftY uint8, depth int, flags Flags) Descriptor {
	bits := 8
	if depth > 8 {
		bits = 16
	}
	return Descriptor{
		Name:         name,
		Flags:        FlagYUV | FlagPlanar | flags,
		Depth:        depth,
		ChromaShiftX: shiftX,
		ChromaShiftY: shiftY,
		NumPlanes:    3,
		Planes: [maxPlanes]Plane{
			{BitsPerPixel: bits},
			{BitsPerPixel: bits, ShiftX: shiftX, ShiftY: shiftY},
			{BitsPerPixel: bits, ShiftX: shiftX, ShiftY: shiftY},
		},
	}
}

func yuvaPlanar(name string, shiftX, shiftY uint8) Descriptor {
	d := yuvPlanar(name, shiftX, shiftY, 8, FlagAlpha)
	d.NumPlanes = 4
	d.Planes[3] = Plane{BitsPerPixel: 8}
	return d
}

func yuvSemiPlanar(name string) Descriptor {
	return Descriptor{
		Name:         name,
		Flags:        FlagYUV | FlagPlanar,
		Depth:        8,
		ChromaShiftX: 1,
		ChromaShiftY: 1,
		NumPlanes:    2,
		Planes: [maxPlanes]Plane{
			{BitsPerPixel: 8},
			{BitsPerPixel: 16, ShiftX: 1, ShiftY: 1},
		},
	}
}

func yuvPacked(name string) Descriptor {
	return Descriptor{
		Name:         name,
		Flags:        FlagYUV,
		Depth:        8,
		ChromaShiftX: 1,
		NumPlanes:    1,
		Planes:       [maxPlanes]Plane{{BitsPerPixel: 16}},
	}
}

func packed(name string, family Flags, bitsPerPixel, depth int, flags Flags) Descriptor {
	return Descriptor{
		Name:      name,
		Flags:     family | flags,
		Depth:     depth,
		NumPlanes: 1,
		Planes:    [maxPlanes]Plane{{BitsPerPixel: bitsPerPixel}},
	}
}

func hwaccel(name string) Descriptor {
	return Descriptor{
		Name:  name,
		Flags: FlagHWAccel,
	}
}

var descriptors = [End]Descriptor{
	YUV420P:  yuvPlanar("yuv420p", 1, 1, 8, 0),
	YUV422P:  yuvPlanar("yuv422p", 1, 0, 8, 0),
	YUV444P:  yuvPlanar("yuv444p", 0, 0, 8, 0),
	YUV410P:  yuvPlanar("yuv410p", 2, 2, 8, 0),
	YUV411P:  yuvPlanar("yuv411p", 2, 0, 8, 0),
	YUV440P:  yuvPlanar("yuv440p", 0, 1, 8, 0),
	YUVJ420P: yuvPlanar("yuvj420p", 1, 1, 8, FlagFullRange),
	YUVJ422P: yuvPlanar("yuvj422p", 1, 0, 8, FlagFullRange),
	YUVJ444P: yuvPlanar("yuvj444p", 0, 0, 8, FlagFullRange),
	YUVJ440P: yuvPlanar("yuvj440p", 0, 1, 8, FlagFullRange),
	YUVA420P: yuvaPlanar("yuva420p", 1, 1),

	YUV420P9LE:  yuvPlanar("yuv420p9le", 1, 1, 9, 0),
	YUV420P9BE:  yuvPlanar("yuv420p9be", 1, 1, 9, FlagBigEndian),
	YUV420P10LE: yuvPlanar("yuv420p10le", 1, 1, 10, 0),
	YUV420P10BE: yuvPlanar("yuv420p10be", 1, 1, 10, FlagBigEndian),
	YUV420P12LE: yuvPlanar("yuv420p12le", 1, 1, 12, 0),
	YUV420P12BE: yuvPlanar("yuv420p12be", 1, 1, 12, FlagBigEndian),
	YUV420P14LE: yuvPlanar("yuv420p14le", 1, 1, 14, 0),
	YUV420P14BE: yuvPlanar("yuv420p14be", 1, 1, 14, FlagBigEndian),
	YUV420P16LE: yuvPlanar("yuv420p16le", 1, 1, 16, 0),
	YUV420P16BE: yuvPlanar("yuv420p16be", 1, 1, 16, FlagBigEndian),
	YUV422P9LE:  yuvPlanar("yuv422p9le", 1, 0, 9, 0),
	YUV422P9BE:  yuvPlanar("yuv422p9be", 1, 0, 9, FlagBigEndian),
	YUV422P10LE: yuvPlanar("yuv422p10le", 1, 0, 10, 0),
	YUV422P10BE: yuvPlanar("yuv422p10be", 1, 0, 10, FlagBigEndian),
	YUV422P12LE: yuvPlanar("yuv422p12le", 1, 0, 12, 0),
	YUV422P12BE: yuvPlanar("yuv422p12be", 1, 0, 12, FlagBigEndian),
	YUV422P14LE: yuvPlanar("yuv422p14le", 1, 0, 14, 0),
	YUV422P14BE: yuvPlanar("yuv422p14be", 1, 0, 14, FlagBigEndian),
	YUV422P16LE: yuvPlanar("yuv422p16le", 1, 0, 16, 0),
	YUV422P16BE: yuvPlanar("yuv422p16be", 1, 0, 16, FlagBigEndian),
	YUV444P9LE:  yuvPlanar("yuv444p9le", 0, 0, 9, 0),
	YUV444P9BE:  yuvPlanar("yuv444p9be", 0, 0, 9, FlagBigEndian),
	YUV444P10LE: yuvPlanar("yuv444p10le", 0, 0, 10, 0),
	YUV444P10BE: yuvPlanar("yuv444p10be", 0, 0, 10, FlagBigEndian),
	YUV444P12LE: yuvPlanar("yuv444p12le", 0, 0, 12, 0),
	YUV444P12BE: yuvPlanar("yuv444p12be", 0, 0, 12, FlagBigEndian),
	YUV444P14LE: yuvPlanar("yuv444p14le", 0, 0, 14, 0),
	YUV444P14BE: yuvPlanar("yuv444p14be", 0, 0, 14, FlagBigEndian),
	YUV444P16LE: yuvPlanar("yuv444p16le", 0, 0, 16, 0),
	YUV444P16BE: yuvPlanar("yuv444p16be", 0, 0, 16, FlagBigEndian),

	NV12:    yuvSemiPlanar("nv12"),
	NV21:    yuvSemiPlanar("nv21"),
	YUYV422: yuvPacked("yuyv422"),
	UYVY422: yuvPacked("uyvy422"),

	RGB24:    packed("rgb24", FlagRGB, 24, 8, 0),
	BGR24:    packed("bgr24", FlagRGB, 24, 8, 0),
	RGBA:     packed("rgba", FlagRGB, 32, 8, FlagAlpha),
	BGRA:     packed("bgra", FlagRGB, 32, 8, FlagAlpha),
	ARGB:     packed("argb", FlagRGB, 32, 8, FlagAlpha),
	ABGR:     packed("abgr", FlagRGB, 32, 8, FlagAlpha),
	RGB0:     packed("rgb0", FlagRGB, 32, 8, 0),
	BGR0:     packed("bgr0", FlagRGB, 32, 8, 0),
	RGB48LE:  packed("rgb48le", FlagRGB, 48, 16, 0),
	RGB48BE:  packed("rgb48be", FlagRGB, 48, 16, FlagBigEndian),
	RGB565LE: packed("rgb565le", FlagRGB, 16, 5, 0),
	BGR565LE: packed("bgr565le", FlagRGB, 16, 5, 0),
	RGB555LE: packed("rgb555le", FlagRGB, 16, 5, 0),
	BGR555LE: packed("bgr555le", FlagRGB, 16, 5, 0),
	RGB444LE: packed("rgb444le", FlagRGB, 16, 4, 0),
	BGR444LE: packed("bgr444le", FlagRGB, 16, 4, 0),
	RGB8:     packed("rgb8", FlagRGB, 8, 2, 0),
	BGR8:     packed("bgr8", FlagRGB, 8, 2, 0),
	RGB4:     packed("rgb4", FlagRGB, 4, 1, 0),
	BGR4:     packed("bgr4", FlagRGB, 4, 1, 0),
	RGB4Byte: packed("rgb4_byte", FlagRGB, 8, 1, 0),
	BGR4Byte: packed("bgr4_byte", FlagRGB, 8, 1, 0),
	GBRP: {
		Name:      "gbrp",
		Flags:     FlagRGB | FlagPlanar,
		Depth:     8,
		NumPlanes: 3,
		Planes:    [maxPlanes]Plane{{BitsPerPixel: 8}, {BitsPerPixel: 8}, {BitsPerPixel: 8}},
	},

	Gray8:     packed("gray", FlagGray, 8, 8, 0),
	Gray16LE:  packed("gray16le", FlagGray, 16, 16, 0),
	Gray16BE:  packed("gray16be", FlagGray, 16, 16, FlagBigEndian),
	MonoWhite: packed("monow", FlagGray, 1, 1, 0),
	MonoBlack: packed("monob", FlagGray, 1, 1, 0),
	PAL8: {
		Name:      "pal8",
		Flags:     FlagPaletted,
		Depth:     8,
		NumPlanes: 2,
		Planes:    [maxPlanes]Plane{{BitsPerPixel: 8}, {FixedSize: 256 * 4}},
	},

	XYZ12LE: packed("xyz12le", FlagXYZ, 48, 12, 0),
	XYZ12BE: packed("xyz12be", FlagXYZ, 48, 12, FlagBigEndian),

	VDPAU:        hwaccel("vdpau"),
	VAAPI:        hwaccel("vaapi"),
	CUDA:         hwaccel("cuda"),
	VideoToolbox: hwaccel("videotoolbox"),
	MediaCodec:   hwaccel("mediacodec"),
	D3D11:        hwaccel("d3d11"),
	DRMPrime:     hwaccel("drm_prime"),
	QSV:          hwaccel("qsv"),
	Vulkan:       hwaccel("vulkan"),
}
