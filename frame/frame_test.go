package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/types"
)

func TestNewPlanes(t *testing.T) {
	t.Parallel()

	f, err := New(types.ImageParams{PixelFormat: pixfmt.YUV420P, Width: 6, Height: 4})
	require.NoError(t, err)
	defer Release(f)

	require.Len(t, f.Buffer, 24+6+6)
	require.Equal(t, 3, f.NumPlanes())
	require.Equal(t, 6, f.Stride(0))
	require.Equal(t, 3, f.Stride(1))
	require.Len(t, f.Plane(0), 24)
	require.Len(t, f.Plane(1), 6)
	require.Len(t, f.Plane(2), 6)

	f.Plane(2)[0] = 0x42
	require.Equal(t, byte(0x42), f.Buffer[30])
}

func TestNewRejects(t *testing.T) {
	t.Parallel()

	_, err := New(types.ImageParams{PixelFormat: pixfmt.VAAPI, Width: 6, Height: 4})
	require.Error(t, err)
	_, err = New(types.ImageParams{PixelFormat: pixfmt.None, Width: 6, Height: 4})
	require.Error(t, err)
	_, err = New(types.ImageParams{PixelFormat: pixfmt.RGBA, Width: 0, Height: 4})
	require.Error(t, err)
}

func TestCopyAttributes(t *testing.T) {
	t.Parallel()

	src := &Frame{
		Params: types.ImageParams{
			PixelFormat: pixfmt.YUV420P,
			ColorSpace:  types.ColorSpaceBT709,
			ColorLevels: types.ColorLevelsTV,
		},
		PTS:        100,
		PktDTS:     90,
		Duration:   40,
		TimeBase:   types.Rational{Num: 1, Den: 1000},
		Keyframe:   true,
		Interlaced: true,
	}

	yuv := &Frame{Params: types.ImageParams{PixelFormat: pixfmt.NV12}}
	CopyAttributes(yuv, src)
	require.Equal(t, int64(100), yuv.PTS)
	require.Equal(t, int64(90), yuv.PktDTS)
	require.Equal(t, int64(40), yuv.Duration)
	require.Equal(t, src.TimeBase, yuv.TimeBase)
	require.True(t, yuv.Keyframe)
	require.True(t, yuv.Interlaced)
	require.Equal(t, types.ColorSpaceBT709, yuv.Params.ColorSpace)

	declared := &Frame{Params: types.ImageParams{PixelFormat: pixfmt.YUV420P, ColorSpace: types.ColorSpaceBT601}}
	CopyAttributes(declared, src)
	require.Equal(t, types.ColorSpaceBT601, declared.Params.ColorSpace)
	require.Equal(t, types.ColorLevelsTV, declared.Params.ColorLevels)

	rgb := &Frame{Params: types.ImageParams{PixelFormat: pixfmt.RGBA, ColorSpace: types.ColorSpaceRGB, ColorLevels: types.ColorLevelsPC}}
	CopyAttributes(rgb, src)
	require.Equal(t, int64(100), rgb.PTS)
	require.Equal(t, types.ColorSpaceRGB, rgb.Params.ColorSpace)
	require.Equal(t, types.ColorLevelsPC, rgb.Params.ColorLevels)
}
