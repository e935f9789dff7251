package services

import "errors"

// DefaultSampleSize is the number of records returned by Sample when the
// configuration does not say otherwise.
const DefaultSampleSize = 2

// Common service errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoResult          = errors.New("no analysis result available")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
