package goscale

import (
	"math"

	"github.com/xaionaro-go/avscale/scaler"
	"golang.org/x/image/draw"
)

// interpolators returns the interpolators for the luma (and packed) and
// the chroma planes.
func interpolators(params scaler.Params) (luma, chroma draw.Interpolator) {
	q := func(idx int, def float64) float64 {
		if !params.IsQualitySet(idx) {
			return def
		}
		return params.Quality[idx]
	}

	switch params.Algorithm {
	case scaler.AlgorithmPoint:
		return draw.NearestNeighbor, draw.NearestNeighbor
	case scaler.AlgorithmFastBilinear:
		return draw.ApproxBiLinear, draw.ApproxBiLinear
	case scaler.AlgorithmBilinear, scaler.AlgorithmArea, scaler.AlgorithmExperimental:
		return draw.BiLinear, draw.BiLinear
	case scaler.AlgorithmBicublin:
		return mitchellNetravali(0, 0.6), draw.BiLinear
	case scaler.AlgorithmGauss:
		k := gaussian(q(0, 3))
		return k, k
	case scaler.AlgorithmSinc:
		k := sinc(3)
		return k, k
	case scaler.AlgorithmLanczos:
		k := lanczos(math.Max(1, q(0, 3)))
		return k, k
	case scaler.AlgorithmSpline:
		k := mitchellNetravali(1, 0)
		return k, k
	default:
		k := mitchellNetravali(q(0, 0)/100, q(1, 60)/100)
		return k, k
	}
}

// newScaler prepares a scaler for fixed source and destination sizes.
func newScaler(i draw.Interpolator, dw, dh, sw, sh int) draw.Scaler {
	if k, ok := i.(*draw.Kernel); ok {
		return k.NewScaler(dw, dh, sw, sh)
	}
	return i
}

// mitchellNetravali is the two-parameter cubic family; (0, 0.5) is
// Catmull-Rom and (1, 0) is the cubic B-spline.
func mitchellNetravali(b, c float64) *draw.Kernel {
	return &draw.Kernel{
		Support: 2,
		At: func(t float64) float64 {
			t = math.Abs(t)
			switch {
			case t < 1:
				return ((12-9*b-6*c)*t*t*t + (-18+12*b+6*c)*t*t + (6 - 2*b)) / 6
			case t < 2:
				return ((-b-6*c)*t*t*t + (6*b+30*c)*t*t + (-12*b-48*c)*t + (8*b + 24*c)) / 6
			}
			return 0
		},
	}
}

func gaussian(p float64) *draw.Kernel {
	return &draw.Kernel{
		Support: 2,
		At: func(t float64) float64 {
			return math.Exp2(-p * t * t)
		},
	}
}

func sinc(support float64) *draw.Kernel {
	return &draw.Kernel{
		Support: support,
		At: func(t float64) float64 {
			return normalizedSinc(t)
		},
	}
}

func lanczos(lobes float64) *draw.Kernel {
	return &draw.Kernel{
		Support: lobes,
		At: func(t float64) float64 {
			if math.Abs(t) >= lobes {
				return 0
			}
			return normalizedSinc(t) * normalizedSinc(t/lobes)
		},
	}
}

func normalizedSinc(t float64) float64 {
	if t == 0 {
		return 1
	}
	t *= math.Pi
	return math.Sin(t) / t
}
