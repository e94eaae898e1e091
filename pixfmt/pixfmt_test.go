package pixfmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	for _, id := range All() {
		require.Equal(t, id, FromString(id.String()), "%d", int(id))
	}
	require.Equal(t, YUV420P, FromString(" YUV420P "))
	require.Equal(t, None, FromString("h264"))
	require.Equal(t, "none", None.String())
	require.Equal(t, "ID(9999)", ID(9999).String())
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var id ID
	require.NoError(t, id.UnmarshalText([]byte("nv12")))
	require.Equal(t, NV12, id)
	require.Error(t, id.UnmarshalText([]byte("nope")))
	require.Equal(t, NV12, id)
}

func TestDescriptorsAreComplete(t *testing.T) {
	t.Parallel()

	for _, id := range All() {
		d, ok := id.Descriptor()
		require.True(t, ok)
		require.NotEmpty(t, d.Name, "%d", int(id))
		if d.IsHWAccel() {
			require.Zero(t, d.NumPlanes, d.Name)
			continue
		}
		require.NotZero(t, d.NumPlanes, d.Name)
		require.NotZero(t, d.Flags&(FlagYUV|FlagRGB|FlagGray|FlagPaletted|FlagXYZ), d.Name)
	}

	_, ok := None.Descriptor()
	require.False(t, ok)
	_, ok = End.Descriptor()
	require.False(t, ok)
}

func TestBufferSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id     ID
		width  int
		height int
		want   int
	}{
		{YUV420P, 4, 4, 16 + 4 + 4},
		{YUV420P, 5, 5, 25 + 9 + 9},
		{YUV422P, 4, 2, 8 + 4 + 4},
		{YUV410P, 8, 8, 64 + 4 + 4},
		{YUV420P10LE, 2, 2, 8 + 2 + 2},
		{YUVA420P, 2, 2, 4 + 1 + 1 + 4},
		{NV12, 4, 4, 16 + 8},
		{YUYV422, 3, 2, 12},
		{RGB24, 3, 2, 18},
		{RGBA, 2, 2, 16},
		{MonoWhite, 9, 2, 4},
		{RGB4, 3, 1, 2},
		{PAL8, 2, 2, 4 + 1024},
		{GBRP, 2, 2, 12},
		{VAAPI, 16, 16, 0},
	}

	for _, tt := range tests {
		d, ok := tt.id.Descriptor()
		require.True(t, ok)
		require.Equal(t, tt.want, d.BufferSize(tt.width, tt.height), "%s %dx%d", tt.id, tt.width, tt.height)
	}
}

func TestTablesAreImmutable(t *testing.T) {
	t.Parallel()

	formats := FormatTable()
	require.Equal(t, YUV444P, formats[0])
	formats[0] = None
	require.Equal(t, YUV444P, FormatTable()[0])

	conversions := ConversionTable()
	conversions[0].To = None
	require.Equal(t, UYVY422, ConversionTable()[0].To)
}

func TestConversionsFrom(t *testing.T) {
	t.Parallel()

	require.Equal(t, []ID{UYVY422, YUV422P}, ConversionsFrom(YUYV422))
	require.Equal(t, []ID{BGR24, RGB24, BGR0, RGB0}, ConversionsFrom(GBRP))
	require.Empty(t, ConversionsFrom(RGBA))
}

func TestTablesOnlyReferenceKnownFormats(t *testing.T) {
	t.Parallel()

	for _, id := range FormatTable() {
		d, ok := id.Descriptor()
		require.True(t, ok)
		require.False(t, d.IsHWAccel(), d.Name)
	}
	for _, c := range ConversionTable() {
		require.True(t, c.From.IsValid())
		require.True(t, c.To.IsValid())
	}
}
