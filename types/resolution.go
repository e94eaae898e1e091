package types

import (
	"fmt"
)

type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

func (r *Resolution) Parse(s string) error {
	_, err := fmt.Sscanf(s, "%dx%d", &r.Width, &r.Height)
	if err != nil {
		return fmt.Errorf("unable to parse resolution '%s': %w", s, err)
	}
	return nil
}

// Set and Type make Resolution usable as a command line flag value.
func (r *Resolution) Set(s string) error {
	return r.Parse(s)
}

func (r *Resolution) Type() string {
	return "resolution"
}
