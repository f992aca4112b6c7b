package differ

import (
	"errors"
	"fmt"
)

// ErrInputTooLarge matches any *InputTooLargeError via errors.Is.
var ErrInputTooLarge = errors.New("input too large")

// InputTooLargeError is returned when a report exceeds the configured size
// bound. Nothing is truncated; the diff is simply not computed.
type InputTooLargeError struct {
	Field string
	Size  int
	Limit int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("%s too large (%d bytes > %d bytes limit)", e.Field, e.Size, e.Limit)
}

// Is reports whether target is ErrInputTooLarge.
func (e *InputTooLargeError) Is(target error) bool {
	return target == ErrInputTooLarge
}
