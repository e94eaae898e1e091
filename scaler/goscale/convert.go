package goscale

import (
	"image"
	"math"

	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/types"
)

type kind int

const (
	kindUnsupported = kind(iota)
	kindYUV
	kindGray
	kindRGB
)

// packedLayout gives the byte offsets of the channels within a pixel;
// a negative alpha offset means there is no fourth byte.
type packedLayout struct {
	r, g, b, a    int
	bytesPerPixel int
	hasAlpha      bool
}

var packedLayouts = map[pixfmt.ID]packedLayout{
	pixfmt.RGBA:  {r: 0, g: 1, b: 2, a: 3, bytesPerPixel: 4, hasAlpha: true},
	pixfmt.BGRA:  {r: 2, g: 1, b: 0, a: 3, bytesPerPixel: 4, hasAlpha: true},
	pixfmt.ARGB:  {r: 1, g: 2, b: 3, a: 0, bytesPerPixel: 4, hasAlpha: true},
	pixfmt.ABGR:  {r: 3, g: 2, b: 1, a: 0, bytesPerPixel: 4, hasAlpha: true},
	pixfmt.RGB0:  {r: 0, g: 1, b: 2, a: 3, bytesPerPixel: 4},
	pixfmt.BGR0:  {r: 2, g: 1, b: 0, a: 3, bytesPerPixel: 4},
	pixfmt.RGB24: {r: 0, g: 1, b: 2, a: -1, bytesPerPixel: 3},
	pixfmt.BGR24: {r: 2, g: 1, b: 0, a: -1, bytesPerPixel: 3},
}

func kindOf(id pixfmt.ID) kind {
	if _, ok := packedLayouts[id]; ok {
		return kindRGB
	}
	desc, ok := id.Descriptor()
	if !ok || desc.Depth != 8 {
		return kindUnsupported
	}
	switch {
	case desc.IsYUV() && desc.Flags.Has(pixfmt.FlagPlanar) && desc.NumPlanes == 3:
		return kindYUV
	case desc.IsGray() && desc.Planes[0].BitsPerPixel == 8:
		return kindGray
	}
	return kindUnsupported
}

// matrix converts between 8-bit YUV and RGB.
type matrix struct {
	kr, kg, kb float64
	fullRange  bool
}

func matrixFor(p types.ImageParams) matrix {
	p.GuessColorspace()
	kr, kb := 0.299, 0.114
	switch p.ColorSpace {
	case types.ColorSpaceBT709:
		kr, kb = 0.2126, 0.0722
	case types.ColorSpaceSMPTE240M:
		kr, kb = 0.212, 0.087
	case types.ColorSpaceBT2020NC, types.ColorSpaceBT2020C:
		kr, kb = 0.2627, 0.0593
	}
	return matrix{
		kr:        kr,
		kg:        1 - kr - kb,
		kb:        kb,
		fullRange: p.ColorLevels == types.ColorLevelsPC,
	}
}

func (m matrix) lumaScale() (offset, span float64) {
	if m.fullRange {
		return 0, 255
	}
	return 16, 219
}

func (m matrix) chromaSpan() float64 {
	if m.fullRange {
		return 255
	}
	return 224
}

func (m matrix) toRGB(y, u, v uint8) (r, g, b uint8) {
	offset, span := m.lumaScale()
	cspan := m.chromaSpan()
	fy := (float64(y) - offset) / span
	fu := (float64(u) - 128) / cspan
	fv := (float64(v) - 128) / cspan

	fr := fy + 2*(1-m.kr)*fv
	fb := fy + 2*(1-m.kb)*fu
	fg := (fy - m.kr*fr - m.kb*fb) / m.kg
	return clamp(fr * 255), clamp(fg * 255), clamp(fb * 255)
}

// fromRGB takes channel values in [0, 255].
func (m matrix) fromRGB(r, g, b float64) (y, u, v uint8) {
	fy := (m.kr*r + m.kg*g + m.kb*b) / 255
	fu := (b/255 - fy) / (2 * (1 - m.kb))
	fv := (r/255 - fy) / (2 * (1 - m.kr))

	offset, span := m.lumaScale()
	cspan := m.chromaSpan()
	return clamp(offset + fy*span), clamp(128 + fu*cspan), clamp(128 + fv*cspan)
}

func (m matrix) luma(r, g, b float64) uint8 {
	y, _, _ := m.fromRGB(r, g, b)
	return y
}

func clamp(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// planeImage wraps plane i of f without copying. Every 2^drop-th row is
// used, which implements vertical chroma dropping.
func planeImage(f *frame.Frame, i int, drop int) *image.Gray {
	desc, _ := f.Params.PixelFormat.Descriptor()
	stride, rows := desc.PlaneGeometry(i, f.Params.Width, f.Params.Height)
	rows = (rows + (1 << drop) - 1) >> drop
	return &image.Gray{
		Pix:    f.Plane(i),
		Stride: stride << drop,
		Rect:   image.Rect(0, 0, stride, rows),
	}
}

// decode converts f into dst, which has the size of f.
func decode(dst *image.NRGBA, f *frame.Frame, chromaDrop int) {
	w, h := f.Params.Width, f.Params.Height
	switch kindOf(f.Params.PixelFormat) {
	case kindYUV:
		desc, _ := f.Params.PixelFormat.Descriptor()
		m := matrixFor(f.Params)
		y := planeImage(f, 0, 0)
		u := planeImage(f, 1, 0)
		v := planeImage(f, 2, 0)
		for row := 0; row < h; row++ {
			crow := (row >> desc.ChromaShiftY) >> chromaDrop << chromaDrop
			for col := 0; col < w; col++ {
				ccol := col >> desc.ChromaShiftX
				r, g, b := m.toRGB(
					y.Pix[row*y.Stride+col],
					u.Pix[crow*u.Stride+ccol],
					v.Pix[crow*v.Stride+ccol],
				)
				setNRGBA(dst, col, row, r, g, b, 255)
			}
		}
	case kindGray:
		y := planeImage(f, 0, 0)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				l := y.Pix[row*y.Stride+col]
				setNRGBA(dst, col, row, l, l, l, 255)
			}
		}
	case kindRGB:
		layout := packedLayouts[f.Params.PixelFormat]
		stride := w * layout.bytesPerPixel
		for row := 0; row < h; row++ {
			line := f.Buffer[row*stride : (row+1)*stride]
			for col := 0; col < w; col++ {
				px := line[col*layout.bytesPerPixel:]
				a := uint8(255)
				if layout.hasAlpha {
					a = px[layout.a]
				}
				setNRGBA(dst, col, row, px[layout.r], px[layout.g], px[layout.b], a)
			}
		}
	}
}

func setNRGBA(img *image.NRGBA, x, y int, r, g, b, a uint8) {
	off := img.PixOffset(x, y)
	img.Pix[off+0] = r
	img.Pix[off+1] = g
	img.Pix[off+2] = b
	img.Pix[off+3] = a
}

// straight returns the non-premultiplied channels of a premultiplied
// RGBA pixel as floats in [0, 255].
func straight(img *image.RGBA, x, y int) (r, g, b, a float64) {
	off := img.PixOffset(x, y)
	a = float64(img.Pix[off+3])
	r, g, b = float64(img.Pix[off+0]), float64(img.Pix[off+1]), float64(img.Pix[off+2])
	if a == 0 {
		return 0, 0, 0, 0
	}
	if a < 255 {
		r, g, b = r*255/a, g*255/a, b*255/a
	}
	return r, g, b, a
}

// encode converts src, which has the size of f, into f.
func encode(f *frame.Frame, src *image.RGBA) {
	w, h := f.Params.Width, f.Params.Height
	switch kindOf(f.Params.PixelFormat) {
	case kindYUV:
		desc, _ := f.Params.PixelFormat.Descriptor()
		m := matrixFor(f.Params)
		y := planeImage(f, 0, 0)
		u := planeImage(f, 1, 0)
		v := planeImage(f, 2, 0)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				r, g, b, _ := straight(src, col, row)
				y.Pix[row*y.Stride+col] = m.luma(r, g, b)
			}
		}
		blockW, blockH := 1<<desc.ChromaShiftX, 1<<desc.ChromaShiftY
		for crow := 0; crow < u.Rect.Dy(); crow++ {
			for ccol := 0; ccol < u.Rect.Dx(); ccol++ {
				var sr, sg, sb, n float64
				for row := crow * blockH; row < min((crow+1)*blockH, h); row++ {
					for col := ccol * blockW; col < min((ccol+1)*blockW, w); col++ {
						r, g, b, _ := straight(src, col, row)
						sr, sg, sb = sr+r, sg+g, sb+b
						n++
					}
				}
				_, cu, cv := m.fromRGB(sr/n, sg/n, sb/n)
				u.Pix[crow*u.Stride+ccol] = cu
				v.Pix[crow*v.Stride+ccol] = cv
			}
		}
	case kindGray:
		m := matrix{kr: 0.299, kg: 0.587, kb: 0.114, fullRange: true}
		y := planeImage(f, 0, 0)
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				r, g, b, _ := straight(src, col, row)
				y.Pix[row*y.Stride+col] = m.luma(r, g, b)
			}
		}
	case kindRGB:
		layout := packedLayouts[f.Params.PixelFormat]
		stride := w * layout.bytesPerPixel
		for row := 0; row < h; row++ {
			line := f.Buffer[row*stride : (row+1)*stride]
			for col := 0; col < w; col++ {
				px := line[col*layout.bytesPerPixel:]
				r, g, b, a := straight(src, col, row)
				px[layout.r] = clamp(r)
				px[layout.g] = clamp(g)
				px[layout.b] = clamp(b)
				switch {
				case layout.hasAlpha:
					px[layout.a] = clamp(a)
				case layout.a >= 0:
					px[layout.a] = 255
				}
			}
		}
	}
}

// levelsTable converts samples between limited and full range; nil means
// no conversion is needed.
func levelsTable(fromFull, toFull, chroma bool) *[256]uint8 {
	if fromFull == toFull {
		return nil
	}
	offset, limited := 16.0, 219.0
	if chroma {
		offset, limited = 128, 224
	}
	var table [256]uint8
	for v := range table {
		fv := float64(v)
		switch {
		case chroma && fromFull:
			table[v] = clamp(128 + (fv-128)*limited/255)
		case chroma:
			table[v] = clamp(128 + (fv-128)*255/limited)
		case fromFull:
			table[v] = clamp(offset + fv*limited/255)
		default:
			table[v] = clamp((fv - offset) * 255 / limited)
		}
	}
	return &table
}
