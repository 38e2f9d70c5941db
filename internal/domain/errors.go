package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks a precondition violation by the caller.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func check(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return invalidf(format, args...)
}
