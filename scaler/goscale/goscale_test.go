package goscale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
)

func imageParams(id pixfmt.ID, w, h int) types.ImageParams {
	return types.ImageParams{
		PixelFormat:   id,
		Width:         w,
		Height:        h,
		DisplayWidth:  w,
		DisplayHeight: h,
	}
}

func params(src, dst types.ImageParams, algo scaler.Algorithm) scaler.Params {
	return scaler.Params{
		Src:         src,
		Dst:         dst,
		Quality:     [2]float64{scaler.ParamDefault, scaler.ParamDefault},
		Algorithm:   algo,
		ColorAdjust: scaler.NeutralColorAdjust(),
	}
}

func newFrame(t *testing.T, p types.ImageParams, planeValues ...byte) *frame.Frame {
	t.Helper()
	f, err := frame.New(p)
	require.NoError(t, err)
	for i, v := range planeValues {
		plane := f.Plane(i)
		for idx := range plane {
			plane[idx] = v
		}
	}
	return f
}

func requireFlat(t *testing.T, b []byte, v byte) {
	t.Helper()
	for idx, got := range b {
		require.InDelta(t, int(v), int(got), 2, "byte #%d", idx)
	}
}

func scale(t *testing.T, p scaler.Params, src *frame.Frame) *frame.Frame {
	t.Helper()
	ctx := context.Background()
	e := New()
	require.NoError(t, e.Reinit(ctx, p))
	dst, err := frame.New(p.Dst)
	require.NoError(t, err)
	require.NoError(t, e.Scale(ctx, dst, src))
	require.NoError(t, e.Close(ctx))
	return dst
}

func TestSupports(t *testing.T) {
	t.Parallel()
	e := New()
	for _, id := range []pixfmt.ID{
		pixfmt.YUV420P, pixfmt.YUV422P, pixfmt.YUV444P, pixfmt.YUV410P, pixfmt.YUV411P, pixfmt.YUV440P,
		pixfmt.YUVJ420P, pixfmt.Gray8, pixfmt.RGBA, pixfmt.BGR0, pixfmt.RGB24, pixfmt.BGR24,
	} {
		require.True(t, e.SupportsInput(id), id.String())
		require.True(t, e.SupportsOutput(id), id.String())
	}
	for _, id := range []pixfmt.ID{
		pixfmt.NV12, pixfmt.YUYV422, pixfmt.YUVA420P, pixfmt.YUV420P10LE, pixfmt.Gray16LE,
		pixfmt.RGB565LE, pixfmt.PAL8, pixfmt.VAAPI, pixfmt.None,
	} {
		require.False(t, e.SupportsInput(id), id.String())
	}
}

func TestScaleNotInitialized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := New()
	require.ErrorAs(t, e.Scale(ctx, &frame.Frame{}, &frame.Frame{}), &scaler.ErrNotInitialized{})

	require.Error(t, e.Reinit(ctx, params(
		imageParams(pixfmt.NV12, 8, 8),
		imageParams(pixfmt.YUV420P, 8, 8),
		scaler.AlgorithmBicubic,
	)))
	require.ErrorAs(t, e.Scale(ctx, &frame.Frame{}, &frame.Frame{}), &scaler.ErrNotInitialized{})

	require.NoError(t, e.Close(ctx))
	require.Error(t, e.Reinit(ctx, params(
		imageParams(pixfmt.YUV420P, 8, 8),
		imageParams(pixfmt.YUV420P, 8, 8),
		scaler.AlgorithmBicubic,
	)))
}

func TestFlatYUV(t *testing.T) {
	t.Parallel()
	for algo := range scaler.AlgorithmSpline + 1 {
		algo := algo
		t.Run(algo.String(), func(t *testing.T) {
			t.Parallel()
			src := newFrame(t, imageParams(pixfmt.YUV420P, 64, 48), 120, 110, 140)
			defer frame.Release(src)
			dst := scale(t, params(src.Params, imageParams(pixfmt.YUV444P, 40, 30), algo), src)
			defer frame.Release(dst)
			requireFlat(t, dst.Plane(0), 120)
			requireFlat(t, dst.Plane(1), 110)
			requireFlat(t, dst.Plane(2), 140)
		})
	}
}

func TestFlatThroughRGB(t *testing.T) {
	t.Parallel()

	src := newFrame(t, imageParams(pixfmt.YUV420P, 64, 48), 120, 110, 140)
	defer frame.Release(src)
	rgb := scale(t, params(src.Params, imageParams(pixfmt.BGRA, 32, 24), scaler.AlgorithmBilinear), src)
	defer frame.Release(rgb)
	require.Equal(t, byte(255), rgb.Buffer[3])
	for idx := 4; idx < len(rgb.Buffer); idx++ {
		require.InDelta(t, int(rgb.Buffer[idx%4]), int(rgb.Buffer[idx]), 1)
	}

	back := scale(t, params(rgb.Params, imageParams(pixfmt.YUV420P, 64, 48), scaler.AlgorithmBicubic), rgb)
	defer frame.Release(back)
	requireFlat(t, back.Plane(0), 120)
	requireFlat(t, back.Plane(1), 110)
	requireFlat(t, back.Plane(2), 140)
}

func TestPackedLayouts(t *testing.T) {
	t.Parallel()

	src := newFrame(t, imageParams(pixfmt.RGBA, 16, 16))
	defer frame.Release(src)
	for idx := 0; idx < len(src.Buffer); idx += 4 {
		copy(src.Buffer[idx:], []byte{10, 200, 30, 255})
	}

	dst := scale(t, params(src.Params, imageParams(pixfmt.BGR24, 8, 8), scaler.AlgorithmPoint), src)
	defer frame.Release(dst)
	require.Len(t, dst.Buffer, 8*8*3)
	require.Equal(t, []byte{30, 200, 10}, dst.Buffer[:3])

	argb := scale(t, params(src.Params, imageParams(pixfmt.ARGB, 8, 8), scaler.AlgorithmPoint), src)
	defer frame.Release(argb)
	require.Equal(t, []byte{255, 10, 200, 30}, argb.Buffer[:4])
}

func TestLevels(t *testing.T) {
	t.Parallel()

	gray := newFrame(t, imageParams(pixfmt.Gray8, 16, 16), 255)
	defer frame.Release(gray)
	yuv := scale(t, params(gray.Params, imageParams(pixfmt.YUV420P, 16, 16), scaler.AlgorithmBicubic), gray)
	defer frame.Release(yuv)
	requireFlat(t, yuv.Plane(0), 235)
	requireFlat(t, yuv.Plane(1), 128)
	requireFlat(t, yuv.Plane(2), 128)

	limited := newFrame(t, imageParams(pixfmt.YUV420P, 16, 16), 235, 240, 16)
	defer frame.Release(limited)
	full := scale(t, params(limited.Params, imageParams(pixfmt.YUVJ420P, 16, 16), scaler.AlgorithmBicubic), limited)
	defer frame.Release(full)
	requireFlat(t, full.Plane(0), 255)
	requireFlat(t, full.Plane(1), 255)
	requireFlat(t, full.Plane(2), 0)
}

func TestChromaDrop(t *testing.T) {
	t.Parallel()

	src := newFrame(t, imageParams(pixfmt.YUV444P, 16, 16), 100, 0, 0)
	defer frame.Release(src)
	u, v := src.Plane(1), src.Plane(2)
	for row := 0; row < 16; row++ {
		val := byte(50)
		if row%2 == 1 {
			val = 200
		}
		for col := 0; col < 16; col++ {
			u[row*16+col] = val
			v[row*16+col] = val
		}
	}

	p := params(src.Params, imageParams(pixfmt.YUV444P, 16, 16), scaler.AlgorithmPoint)
	p.ChromaDrop = 1
	dst := scale(t, p, src)
	defer frame.Release(dst)
	requireFlat(t, dst.Plane(0), 100)
	requireFlat(t, dst.Plane(1), 50)
	requireFlat(t, dst.Plane(2), 50)
}

func TestColorAdjust(t *testing.T) {
	t.Parallel()

	src := newFrame(t, imageParams(pixfmt.YUV420P, 16, 16), 120, 60, 200)
	defer frame.Release(src)
	p := params(src.Params, imageParams(pixfmt.YUV420P, 8, 8), scaler.AlgorithmBilinear)
	p.ColorAdjust.Saturation = 0
	dst := scale(t, p, src)
	defer frame.Release(dst)
	requireFlat(t, dst.Plane(0), 120)
	requireFlat(t, dst.Plane(1), 128)
	requireFlat(t, dst.Plane(2), 128)

	rgba := newFrame(t, imageParams(pixfmt.RGB0, 16, 16))
	defer frame.Release(rgba)
	for idx := 0; idx < len(rgba.Buffer); idx += 4 {
		copy(rgba.Buffer[idx:], []byte{100, 100, 100, 0})
	}
	p = params(rgba.Params, imageParams(pixfmt.RGB0, 8, 8), scaler.AlgorithmBilinear)
	p.ColorAdjust.Brightness = -scaler.ColorAdjustOne
	dark := scale(t, p, rgba)
	defer frame.Release(dark)
	require.Equal(t, []byte{0, 0, 0, 255}, dark.Buffer[:4])
}

func TestMitchellNetravali(t *testing.T) {
	t.Parallel()

	catmullRom := mitchellNetravali(0, 0.5)
	require.InDelta(t, 1, catmullRom.At(0), 1e-9)
	require.InDelta(t, 0, catmullRom.At(1), 1e-9)
	require.InDelta(t, 0, catmullRom.At(2), 1e-9)

	bspline := mitchellNetravali(1, 0)
	require.InDelta(t, 2.0/3, bspline.At(0), 1e-9)
	require.InDelta(t, 1.0/6, bspline.At(1), 1e-9)
}
