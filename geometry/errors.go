package geometry

import (
	"fmt"
)

type ErrInvalidSpec struct {
	RawWidth  int
	RawHeight int
	Err       error
}

func (e ErrInvalidSpec) Error() string {
	return fmt.Sprintf("invalid output size request %d:%d: %v", e.RawWidth, e.RawHeight, e.Err)
}

func (e ErrInvalidSpec) Unwrap() error {
	return e.Err
}

type ErrInvalidSource struct {
	Source Source
}

func (e ErrInvalidSource) Error() string {
	return fmt.Sprintf("invalid source geometry %s", e.Source)
}

type ErrNonPositiveResult struct {
	Width  int
	Height int
}

func (e ErrNonPositiveResult) Error() string {
	return fmt.Sprintf("the resolved size %dx%d is not positive", e.Width, e.Height)
}

// ErrSizeOverflow means a resolved dimension does not fit into an int.
type ErrSizeOverflow struct {
	Axis string
}

func (e ErrSizeOverflow) Error() string {
	return fmt.Sprintf("the resolved %s is too large", e.Axis)
}
