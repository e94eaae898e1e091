package scaler

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Algorithm selects the interpolation used when resizing.
type Algorithm int

const (
	AlgorithmBicubic = Algorithm(iota)
	AlgorithmFastBilinear
	AlgorithmBilinear
	AlgorithmExperimental
	AlgorithmPoint
	AlgorithmArea
	AlgorithmBicublin
	AlgorithmGauss
	AlgorithmSinc
	AlgorithmLanczos
	AlgorithmSpline
	endOfAlgorithm
)

func (a Algorithm) IsValid() bool {
	return a >= 0 && a < endOfAlgorithm
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmBicubic:
		return "bicubic"
	case AlgorithmFastBilinear:
		return "fast-bilinear"
	case AlgorithmBilinear:
		return "bilinear"
	case AlgorithmExperimental:
		return "x"
	case AlgorithmPoint:
		return "point"
	case AlgorithmArea:
		return "area"
	case AlgorithmBicublin:
		return "bicublin"
	case AlgorithmGauss:
		return "gauss"
	case AlgorithmSinc:
		return "sinc"
	case AlgorithmLanczos:
		return "lanczos"
	case AlgorithmSpline:
		return "spline"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func AlgorithmFromString(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a := range endOfAlgorithm {
		if a.String() == s {
			return a, nil
		}
	}
	return AlgorithmBicubic, fmt.Errorf("unknown scaling algorithm '%s'", s)
}

func (a *Algorithm) Set(s string) error {
	v, err := AlgorithmFromString(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (a *Algorithm) Type() string {
	return "algorithm"
}

func (a *Algorithm) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return a.Set(s)
}

func (a Algorithm) MarshalYAML() (any, error) {
	return a.String(), nil
}
