package digitring

import (
	"errors"
	"fmt"
)

// Errors returned by ring operations. Wrapped errors carry detail and unwrap
// to one of these, so callers should match with errors.Is.
var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrIndexOutOfBounds       = errors.New("index out of bounds")
	ErrDivisionByZero         = errors.New("division by zero")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrNoSuchElement          = errors.New("no such element")
	ErrUnsupportedOperation   = errors.New("unsupported operation")
	ErrFormat                 = errors.New("malformed numeral")
)

func invalidArgumentError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func indexOutOfBoundsError(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfBounds, index, size)
}

func formatError(s string) error {
	return fmt.Errorf("%w: %q", ErrFormat, s)
}

func sliceBoundsError(from, to, size int) error {
	return fmt.Errorf("%w: slice [%d:%d], size %d", ErrIndexOutOfBounds, from, to, size)
}
