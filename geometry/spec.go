package geometry

import (
	"fmt"
)

// Spec is the decoded user request for the output size.
type Spec struct {
	Width  Axis
	Height Axis
}

func (s Spec) String() string {
	return fmt.Sprintf("%s:%s", s.Width, s.Height)
}

func (s Spec) Validate() error {
	if s.Width.IsRelative() && s.Height.IsRelative() {
		return fmt.Errorf("both axes are relative to each other")
	}
	for _, a := range []Axis{s.Width, s.Height} {
		if a.Kind == AxisAbsolute && a.Value <= 0 {
			return fmt.Errorf("non-positive absolute size %d", a.Value)
		}
	}
	return nil
}

// ParseSpec decodes the raw width and height values.
func ParseSpec(rawWidth, rawHeight int) (_ Spec, _err error) {
	defer func() {
		if _err != nil {
			_err = ErrInvalidSpec{RawWidth: rawWidth, RawHeight: rawHeight, Err: _err}
		}
	}()

	w, err := DecodeAxis(rawWidth)
	if err != nil {
		return Spec{}, fmt.Errorf("width: %w", err)
	}
	h, err := DecodeAxis(rawHeight)
	if err != nil {
		return Spec{}, fmt.Errorf("height: %w", err)
	}
	s := Spec{Width: w, Height: h}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}
