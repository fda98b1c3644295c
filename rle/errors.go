package rle

import "github.com/pkg/errors"

var (
	// ErrMalformedHeader is returned when a header line is present but cannot be parsed
	ErrMalformedHeader = errors.New("malformed header")
	// ErrUnknownToken is returned for a body character outside digits, 'b', 'o', '$', '!' and whitespace
	ErrUnknownToken = errors.New("unknown token")
	// ErrUnterminatedPattern is returned when the body has no '!'
	ErrUnterminatedPattern = errors.New("unterminated pattern")
	// ErrDimensionTooSmall is returned when the requested grid cannot hold the pattern
	ErrDimensionTooSmall = errors.New("dimension too small")
)
