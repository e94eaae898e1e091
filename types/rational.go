package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Rational is used for time bases and aspect ratios.
type Rational struct {
	Num int
	Den int
}

func (r Rational) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

// Reduce returns the equivalent fraction with the smallest denominator.
func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return r
	}
	gcd := big.NewInt(0).GCD(nil, nil, big.NewInt(int64(abs(r.Num))), big.NewInt(int64(abs(r.Den)))).Int64()
	if gcd == 0 {
		return r
	}
	return Rational{Num: r.Num / int(gcd), Den: r.Den / int(gcd)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func RationalFromString(s string) (Rational, error) {
	var r Rational
	s = strings.TrimSpace(s)
	switch {
	case len(s) == 0:
		return Rational{}, fmt.Errorf("unable to parse Rational from empty string")
	case strings.Contains(s, "/"):
		if _, err := fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den); err != nil {
			return Rational{}, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
	default:
		if _, err := fmt.Sscanf(s, "%d", &r.Num); err != nil {
			return Rational{}, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r.Den = 1
	}
	if r.Den == 0 {
		return Rational{}, fmt.Errorf("denominator cannot be zero")
	}
	return r, nil
}
