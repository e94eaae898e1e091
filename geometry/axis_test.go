package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAxis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     int
		want    Axis
		wantErr bool
	}{
		{raw: 640, want: Axis{Kind: AxisAbsolute, Value: 640}},
		{raw: 1, want: Axis{Kind: AxisAbsolute, Value: 1}},
		{raw: 0, want: Axis{Kind: AxisFromDisplay}},
		{raw: -1, want: Axis{Kind: AxisFromSource}},
		{raw: -2, want: Axis{Kind: AxisRelativeDisplay}},
		{raw: -3, want: Axis{Kind: AxisRelativeSource}},
		{raw: -4, wantErr: true},
		{raw: -7, wantErr: true},
		{raw: -8, want: Axis{Kind: AxisFromDisplay, RoundTo16: true}},
		{raw: -9, want: Axis{Kind: AxisFromSource, RoundTo16: true}},
		{raw: -10, want: Axis{Kind: AxisRelativeDisplay, RoundTo16: true}},
		{raw: -11, want: Axis{Kind: AxisRelativeSource, RoundTo16: true}},
		{raw: -12, wantErr: true},
	}

	for _, tt := range tests {
		got, err := DecodeAxis(tt.raw)
		if tt.wantErr {
			require.Error(t, err, "%d", tt.raw)
			continue
		}
		require.NoError(t, err, "%d", tt.raw)
		require.Equal(t, tt.want, got, "%d", tt.raw)
		require.Equal(t, tt.raw, got.Raw())
	}
}

func TestParseSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{name: "defaults", w: -1, h: -1},
		{name: "relative width", w: -3, h: 200},
		{name: "relative height", w: 640, h: -2},
		{name: "relative to relative", w: -3, h: -2, wantErr: true},
		{name: "both rounded relative", w: -11, h: -11, wantErr: true},
		{name: "rounded relative vs relative", w: -10, h: -3, wantErr: true},
		{name: "rounded relative vs rounded source", w: -10, h: -9},
		{name: "out of range", w: -5, h: 100, wantErr: true},
		{name: "out of range height", w: 100, h: -20, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseSpec(tt.w, tt.h)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var specErr ErrInvalidSpec
			require.True(t, errors.As(err, &specErr))
			require.Equal(t, tt.w, specErr.RawWidth)
			require.Equal(t, tt.h, specErr.RawHeight)
		})
	}
}
