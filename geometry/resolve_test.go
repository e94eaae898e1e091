package geometry

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSpec(t *testing.T, w, h int) Spec {
	s, err := ParseSpec(w, h)
	require.NoError(t, err)
	return s
}

func TestResolve(t *testing.T) {
	t.Parallel()

	fullHD := Source{Width: 1920, Height: 1080, DisplayWidth: 1920, DisplayHeight: 1080}
	anamorphic := Source{Width: 720, Height: 576, DisplayWidth: 1024, DisplayHeight: 576}

	tests := []struct {
		name string
		w, h int
		noUp AntiUpscale
		src  Source
		want Result
	}{
		{
			name: "unchanged",
			w:    -1,
			h:    -1,
			src:  fullHD,
			want: Result{1920, 1080, 1920, 1080},
		},
		{
			name: "unchanged anamorphic",
			w:    -1,
			h:    -1,
			src:  anamorphic,
			want: Result{720, 576, 1024, 576},
		},
		{
			name: "width from decoded aspect",
			w:    -3,
			h:    200,
			src:  fullHD,
			want: Result{355, 200, 355, 200},
		},
		{
			name: "height from decoded aspect",
			w:    640,
			h:    -3,
			src:  fullHD,
			want: Result{640, 360, 640, 360},
		},
		{
			name: "width from display aspect",
			w:    -2,
			h:    288,
			src:  anamorphic,
			want: Result{512, 288, 512, 288},
		},
		{
			name: "width from decoded aspect of anamorphic",
			w:    -3,
			h:    288,
			src:  anamorphic,
			want: Result{360, 288, 512, 288},
		},
		{
			name: "display width rounded",
			w:    -8,
			h:    -1,
			src:  Source{Width: 960, Height: 540, DisplayWidth: 1000, DisplayHeight: 540},
			want: Result{1008, 540, 1008, 544},
		},
		{
			name: "source height rounded",
			w:    -1,
			h:    -9,
			src:  fullHD,
			want: Result{1920, 1088, 1934, 1088},
		},
		{
			name: "relative width rounded",
			w:    -11,
			h:    200,
			src:  fullHD,
			want: Result{352, 200, 355, 200},
		},
		{
			name: "display sizes",
			w:    0,
			h:    0,
			src:  anamorphic,
			want: Result{1024, 576, 1024, 576},
		},
		{
			name: "no upscale any axis",
			w:    800,
			h:    -1,
			noUp: AntiUpscaleAnyAxis,
			src:  Source{Width: 640, Height: 480, DisplayWidth: 640, DisplayHeight: 480},
			want: Result{640, 480, 640, 480},
		},
		{
			name: "no upscale both axes with one axis grown",
			w:    800,
			h:    -1,
			noUp: AntiUpscaleBothAxes,
			src:  Source{Width: 640, Height: 480, DisplayWidth: 640, DisplayHeight: 480},
			want: Result{800, 480, 800, 600},
		},
		{
			name: "no upscale both axes with both grown",
			w:    800,
			h:    -3,
			noUp: AntiUpscaleBothAxes,
			src:  Source{Width: 640, Height: 480, DisplayWidth: 640, DisplayHeight: 480},
			want: Result{640, 480, 640, 480},
		},
		{
			name: "downscale is allowed",
			w:    320,
			h:    -3,
			noUp: AntiUpscaleAnyAxis,
			src:  Source{Width: 640, Height: 480, DisplayWidth: 640, DisplayHeight: 480},
			want: Result{320, 240, 320, 240},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Resolve(context.Background(), mustSpec(t, tt.w, tt.h), tt.noUp, tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := Source{Width: 1280, Height: 720, DisplayWidth: 1280, DisplayHeight: 720}
	spec := mustSpec(t, -11, 333)
	first, err := Resolve(ctx, spec, AntiUpscaleDisabled, src)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Resolve(ctx, spec, AntiUpscaleDisabled, src)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := Source{Width: 100, Height: 1000, DisplayWidth: 100, DisplayHeight: 1000}

	_, err := Resolve(ctx, mustSpec(t, -3, 1), AntiUpscaleDisabled, src)
	var nonPositive ErrNonPositiveResult
	require.True(t, errors.As(err, &nonPositive), "%v", err)

	_, err = Resolve(ctx, mustSpec(t, 4, -9), AntiUpscaleDisabled, Source{Width: 4, Height: 7, DisplayWidth: 4, DisplayHeight: 7})
	require.True(t, errors.As(err, &nonPositive), "%v", err)

	_, err = Resolve(ctx, mustSpec(t, -1, -1), AntiUpscaleDisabled, Source{Width: 0, Height: 10, DisplayWidth: 1, DisplayHeight: 1})
	var badSource ErrInvalidSource
	require.True(t, errors.As(err, &badSource), "%v", err)

	_, err = Resolve(ctx, Spec{Width: Axis{Kind: AxisRelativeSource}, Height: Axis{Kind: AxisRelativeDisplay}}, AntiUpscaleDisabled, src)
	var badSpec ErrInvalidSpec
	require.True(t, errors.As(err, &badSpec), "%v", err)

	_, err = Resolve(ctx, mustSpec(t, -1, -1), AntiUpscale(3), src)
	require.Error(t, err)
}

func TestDisplaySize(t *testing.T) {
	t.Parallel()

	w, h, err := DisplaySize(720, 576, 1024, 576)
	require.NoError(t, err)
	require.Equal(t, 1024, w)
	require.Equal(t, 576, h)

	w, h, err = DisplaySize(640, 480, 1920, 1080)
	require.NoError(t, err)
	require.Equal(t, 853, w)
	require.Equal(t, 480, h)

	for _, size := range [][2]int{{1, 1}, {3, 1000}, {1000, 3}} {
		w, h, err := DisplaySize(size[0], size[1], 16, 9)
		require.NoError(t, err)
		require.GreaterOrEqual(t, w, size[0])
		require.GreaterOrEqual(t, h, size[1])
	}

	_, _, err = DisplaySize(1, math.MaxInt/2, 1000, 1)
	var overflow ErrSizeOverflow
	require.True(t, errors.As(err, &overflow), "%v", err)
}

func TestResolveLargeSizes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fullHD := Source{Width: 1920, Height: 1080, DisplayWidth: 1920, DisplayHeight: 1080}

	// the intermediate product exceeds int64, the result does not
	got, err := Resolve(ctx, mustSpec(t, 20000000000000000, -3), AntiUpscaleDisabled, fullHD)
	require.NoError(t, err)
	require.Equal(t, Result{20000000000000000, 11250000000000000, 20000000000000000, 11250000000000000}, got)

	var overflow ErrSizeOverflow
	_, err = Resolve(ctx, mustSpec(t, -3, math.MaxInt-1), AntiUpscaleDisabled, fullHD)
	require.True(t, errors.As(err, &overflow), "%v", err)

	_, err = Resolve(ctx, mustSpec(t, -11, math.MaxInt-3), AntiUpscaleDisabled, Source{Width: 1, Height: 1, DisplayWidth: 1, DisplayHeight: 1})
	require.True(t, errors.As(err, &overflow), "%v", err)

	_, err = Resolve(ctx, mustSpec(t, math.MaxInt-3, 1), AntiUpscaleDisabled, Source{Width: 1, Height: 1, DisplayWidth: 1, DisplayHeight: 2})
	require.True(t, errors.As(err, &overflow), "%v", err)
}
