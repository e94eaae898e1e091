// Package indicator smooths noisy per-frame measurements, such as the
// time spent scaling each frame.
package indicator

import (
	indicators "github.com/lmpizarro/go_ehlers_indicators"
	"golang.org/x/exp/constraints"
)

// Smoother is a MESA adaptive moving average over a fixed window. Until
// the window is filled it reports the plain mean of what it has seen.
//
// Smoother is not safe for concurrent use.
type Smoother[T constraints.Integer | constraints.Float] struct {
	FastLimit float64
	SlowLimit float64

	window  []float64
	ordered []float64
	next    int
	count   int
	sum     float64
}

func NewSmoother[T constraints.Integer | constraints.Float](window int) *Smoother[T] {
	if window < 1 {
		window = 1
	}
	return &Smoother[T]{
		FastLimit: 0.5,
		SlowLimit: 0.05,
		window:    make([]float64, window),
		ordered:   make([]float64, window),
	}
}

// Update adds a measurement and returns the smoothed value.
func (s *Smoother[T]) Update(v T) T {
	s.window[s.next] = float64(v)
	s.next = (s.next + 1) % len(s.window)
	s.count++

	if !s.Ready() {
		s.sum += float64(v)
		return T(s.sum / float64(s.count))
	}

	// oldest first
	n := copy(s.ordered, s.window[s.next:])
	copy(s.ordered[n:], s.window[:s.next])
	result := indicators.MAMA(s.ordered, s.FastLimit, s.SlowLimit)
	return T(result[len(result)-1])
}

// Ready reports whether the window is filled.
func (s *Smoother[T]) Ready() bool {
	return s.count >= len(s.window)
}
