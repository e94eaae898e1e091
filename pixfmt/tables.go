// tables.go holds the read-only preference tables used by the negotiator.

package pixfmt

import (
	"slices"
)

// Conversion is a (From, To) pair known to be especially cheap.
type Conversion struct {
	From ID
	To   ID
}

// formatTable lists generically preferred output formats grouped by family.
var formatTable = [...]ID{
	// YUV:
	YUV444P,
	YUV444P16LE,
	YUV444P16BE,
	YUV444P14LE,
	YUV444P14BE,
	YUV444P12LE,
	YUV444P12BE,
	YUV444P10LE,
	YUV444P10BE,
	YUV444P9LE,
	YUV444P9BE,
	YUV422P,
	YUV422P16LE,
	YUV422P16BE,
	YUV422P14LE,
	YUV422P14BE,
	YUV422P12LE,
	YUV422P12BE,
	YUV422P10LE,
	YUV422P10BE,
	YUV422P9LE,
	YUV422P9BE,
	YUV420P,
	YUV420P16LE,
	YUV420P16BE,
	YUV420P14LE,
	YUV420P14BE,
	YUV420P12LE,
	YUV420P12BE,
	YUV420P10LE,
	YUV420P10BE,
	YUV420P9LE,
	YUV420P9BE,
	YUVA420P,
	YUV410P,
	YUV411P,
	NV12,
	NV21,
	YUYV422,
	UYVY422,
	YUV440P,

	// RGB and grayscale:
	BGR0,
	RGB0,
	ABGR,
	ARGB,
	BGRA,
	RGBA,
	BGR24,
	RGB24,
	GBRP,
	RGB48LE,
	RGB48BE,
	BGR565LE,
	RGB565LE,
	BGR555LE,
	RGB555LE,
	BGR444LE,
	RGB444LE,
	Gray8,
	BGR8,
	RGB8,
	BGR4,
	RGB4,
	RGB4Byte,
	BGR4Byte,
	MonoBlack,
	MonoWhite,
}

// conversionTable lists conversions in order of preference: ones that
// involve no real scaling work or have fast paths in the engines.
var conversionTable = [...]Conversion{
	{YUYV422, UYVY422},
	{YUYV422, YUV422P},
	{UYVY422, YUYV422},
	{UYVY422, YUV422P},
	{YUV422P, YUYV422},
	{YUV422P, UYVY422},
	{YUV420P10LE, YUV420P},
	{YUV420P10BE, YUV420P},
	{GBRP, BGR24},
	{GBRP, RGB24},
	{GBRP, BGR0},
	{GBRP, RGB0},
	{PAL8, BGR0},
	{XYZ12LE, RGB48LE},
	{XYZ12BE, RGB48BE},
}

// FormatTable returns a copy of the preferred output formats, in order.
func FormatTable() []ID {
	return slices.Clone(formatTable[:])
}

// ConversionTable returns a copy of the preferred conversions, in order.
func ConversionTable() []Conversion {
	return slices.Clone(conversionTable[:])
}

// ConversionsFrom returns the preferred targets for the given source
// format, in table order.
func ConversionsFrom(from ID) []ID {
	var result []ID
	for _, c := range conversionTable {
		if c.From == from {
			result = append(result, c.To)
		}
	}
	return result
}
