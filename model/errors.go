package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a grid is requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidArgument is returned for out-of-range arguments such as a
	// negative generation count or a probability outside [0, 1].
	ErrInvalidArgument = errors.New("invalid argument")
)
