package dataprocessing

import (
	"errors"
	"fmt"
)

// ErrMalformedStructuredField is matched by every FieldParseError.
var ErrMalformedStructuredField = errors.New("malformed structured field")

// FieldParseError reports a JSON-encoded field that could not be decoded.
type FieldParseError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, truncate(e.Value, 64), e.Err)
}

func (e *FieldParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedStructuredField.
func (e *FieldParseError) Is(target error) bool {
	return target == ErrMalformedStructuredField
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
