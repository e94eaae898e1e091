package filter

import (
	"fmt"

	"github.com/xaionaro-go/avscale/pixfmt"
)

// ErrConfiguration means the stage cannot be configured for the given
// configuration and input; the reconfiguration is aborted.
type ErrConfiguration struct {
	Err error
}

func (e ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e ErrConfiguration) Unwrap() error {
	return e.Err
}

// ErrNoOutputFormat means no output format is acceptable downstream.
type ErrNoOutputFormat struct {
	Input pixfmt.ID
}

func (e ErrNoOutputFormat) Error() string {
	return fmt.Sprintf("no suitable output format found for input %s", e.Input)
}

// ErrEngineInit means the scaling engine rejected the resolved parameters.
type ErrEngineInit struct {
	Err error
}

func (e ErrEngineInit) Error() string {
	return fmt.Sprintf("unable to initialize the scaler: %v", e.Err)
}

func (e ErrEngineInit) Unwrap() error {
	return e.Err
}

// ErrUnknownControl is returned for a request no stage of the chain handles.
type ErrUnknownControl struct {
	Request Request
}

func (e ErrUnknownControl) Error() string {
	return fmt.Sprintf("unknown control request %s", e.Request)
}
