package equalizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale/frame"
	"github.com/xaionaro-go/avscale/pixfmt"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
)

func TestParseItem(t *testing.T) {
	t.Parallel()
	for i := ItemUndefined + 1; i < endOfItem; i++ {
		parsed, ok := ParseItem(i.String())
		require.True(t, ok)
		require.Equal(t, i, parsed)
	}
	for _, name := range []string{"hue", "gamma", "", "<undefined>", "Brightness"} {
		_, ok := ParseItem(name)
		require.False(t, ok, name)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for i := ItemUndefined + 1; i < endOfItem; i++ {
		for percent := MinPercent; percent <= MaxPercent; percent++ {
			raw := FixedFromPercent(i, percent)
			require.Equal(t, percent, PercentFromFixed(i, raw), "%s %d -> %d", i, percent, raw)
		}
	}
}

func TestNeutral(t *testing.T) {
	t.Parallel()
	neutral := scaler.NeutralColorAdjust()
	require.Equal(t, neutral.Brightness, FixedFromPercent(ItemBrightness, 0))
	require.Equal(t, neutral.Contrast, FixedFromPercent(ItemContrast, 0))
	require.Equal(t, neutral.Saturation, FixedFromPercent(ItemSaturation, 0))
	require.Equal(t, int32(2*scaler.ColorAdjustOne), FixedFromPercent(ItemContrast, 100))
	require.Equal(t, int32(0), FixedFromPercent(ItemSaturation, -100))
}

type fakeEngine struct {
	reject func(scaler.Params) bool
}

func (e *fakeEngine) String() string                { return "fake" }
func (e *fakeEngine) SupportsInput(pixfmt.ID) bool  { return true }
func (e *fakeEngine) SupportsOutput(pixfmt.ID) bool { return true }
func (e *fakeEngine) Close(context.Context) error   { return nil }

func (e *fakeEngine) Reinit(_ context.Context, p scaler.Params) error {
	if e.reject != nil && e.reject(p) {
		return errors.New("rejected")
	}
	return nil
}

func (e *fakeEngine) Scale(context.Context, *frame.Frame, *frame.Frame) error {
	return nil
}

func newController(t *testing.T, engine *fakeEngine) (*Controller, *scaler.Context) {
	t.Helper()
	sc := scaler.NewContext(engine)
	p := types.ImageParams{
		PixelFormat: pixfmt.YUV420P,
		Width:       16, Height: 16,
		DisplayWidth: 16, DisplayHeight: 16,
	}
	require.NoError(t, sc.Reinit(context.Background(), scaler.Params{
		Src:         p,
		Dst:         p,
		Quality:     [2]float64{scaler.ParamDefault, scaler.ParamDefault},
		ColorAdjust: sc.ColorAdjust(),
	}))
	return New(sc), sc
}

func TestControllerGetSet(t *testing.T) {
	ctx := context.Background()
	c, sc := newController(t, &fakeEngine{})

	for i := ItemUndefined + 1; i < endOfItem; i++ {
		v, err := c.Get(i)
		require.NoError(t, err)
		require.Zero(t, v, i.String())
	}

	require.NoError(t, c.Set(ctx, ItemBrightness, 25))
	require.NoError(t, c.Set(ctx, ItemSaturation, -40))

	v, err := c.Get(ItemBrightness)
	require.NoError(t, err)
	require.Equal(t, 25, v)
	v, err = c.Get(ItemSaturation)
	require.NoError(t, err)
	require.Equal(t, -40, v)
	v, err = c.Get(ItemContrast)
	require.NoError(t, err)
	require.Zero(t, v)

	require.Equal(t, FixedFromPercent(ItemSaturation, -40), sc.Params().ColorAdjust.Saturation)

	require.Error(t, c.Set(ctx, ItemContrast, 101))
	require.Error(t, c.Set(ctx, ItemUndefined, 0))
	_, err = c.Get(Item(42))
	require.Error(t, err)
}

func TestControllerRollback(t *testing.T) {
	ctx := context.Background()
	engine := &fakeEngine{}
	c, sc := newController(t, engine)
	require.NoError(t, c.Set(ctx, ItemContrast, 10))

	engine.reject = func(p scaler.Params) bool {
		return p.ColorAdjust.Contrast == FixedFromPercent(ItemContrast, 50)
	}
	require.Error(t, c.Set(ctx, ItemContrast, 50))

	v, err := c.Get(ItemContrast)
	require.NoError(t, err)
	require.Equal(t, 10, v)
	require.True(t, sc.IsReady())
	require.Equal(t, FixedFromPercent(ItemContrast, 10), sc.Params().ColorAdjust.Contrast)
}
