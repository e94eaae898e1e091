// Package equalizer exposes the colour adjustment of the scale stage as
// percentages, the way picture equalizer controls are usually presented.
package equalizer

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/scaler"
)

type Item int

const (
	ItemUndefined = Item(iota)
	ItemBrightness
	ItemContrast
	ItemSaturation
	endOfItem
)

func (i Item) String() string {
	switch i {
	case ItemUndefined:
		return "<undefined>"
	case ItemBrightness:
		return "brightness"
	case ItemContrast:
		return "contrast"
	case ItemSaturation:
		return "saturation"
	}
	return fmt.Sprintf("Item(%d)", int(i))
}

// ParseItem returns false for names this stage does not handle.
func ParseItem(name string) (Item, bool) {
	for i := ItemUndefined + 1; i < endOfItem; i++ {
		if i.String() == name {
			return i, true
		}
	}
	return ItemUndefined, false
}

const (
	MinPercent = -100
	MaxPercent = 100
)

// PercentFromFixed converts a 16.16 fixed point value into percent,
// rounding to the nearest. Gains (contrast, saturation) are reported
// relative to 1.0, so the neutral value is 0 for every item.
func PercentFromFixed(item Item, raw int32) int {
	percent := int((int64(raw)*100 + (1 << 15)) >> 16)
	if item != ItemBrightness {
		percent -= 100
	}
	return percent
}

// FixedFromPercent is the inverse of PercentFromFixed.
func FixedFromPercent(item Item, percent int) int32 {
	v := int64(percent)
	if item != ItemBrightness {
		v += 100
	}
	return int32(((v << 16) + 50) / 100)
}

// Adjuster holds the colour adjustment; see scaler.Context.
type Adjuster interface {
	ColorAdjust() scaler.ColorAdjust
	SetColorAdjust(ctx context.Context, adj scaler.ColorAdjust) error
}

type Controller struct {
	Adjuster Adjuster
}

func New(adjuster Adjuster) *Controller {
	return &Controller{
		Adjuster: adjuster,
	}
}

func field(adj *scaler.ColorAdjust, item Item) *int32 {
	switch item {
	case ItemBrightness:
		return &adj.Brightness
	case ItemContrast:
		return &adj.Contrast
	case ItemSaturation:
		return &adj.Saturation
	}
	return nil
}

// Get returns the current value of the item in percent.
func (c *Controller) Get(item Item) (int, error) {
	adj := c.Adjuster.ColorAdjust()
	v := field(&adj, item)
	if v == nil {
		return 0, fmt.Errorf("unknown equalizer item %v", item)
	}
	return PercentFromFixed(item, *v), nil
}

// Set changes the item and applies the change right away. If applying
// fails, the previous adjustment stays in effect.
func (c *Controller) Set(
	ctx context.Context,
	item Item,
	percent int,
) (_err error) {
	logger.Tracef(ctx, "Set(%s, %d)", item, percent)
	defer func() { logger.Tracef(ctx, "/Set(%s, %d): %v", item, percent, _err) }()

	if percent < MinPercent || percent > MaxPercent {
		return fmt.Errorf("%s value %d is out of range [%d, %d]", item, percent, MinPercent, MaxPercent)
	}
	adj := c.Adjuster.ColorAdjust()
	v := field(&adj, item)
	if v == nil {
		return fmt.Errorf("unknown equalizer item %v", item)
	}
	*v = FixedFromPercent(item, percent)
	if err := c.Adjuster.SetColorAdjust(ctx, adj); err != nil {
		return fmt.Errorf("unable to set %s to %d%%: %w", item, percent, err)
	}
	return nil
}
