package smoke

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownDriver is returned by Open for a driver name it does not know.
var ErrUnknownDriver = errors.New("unknown browser driver")

// ErrClosed is returned by Visit after the session has been closed.
var ErrClosed = errors.New("browser session closed")

// TimeoutError reports that a readiness condition did not hold within its bound.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %v", e.Op, e.Timeout)
}

// AssertionError reports an observed value that did not satisfy a check.
type AssertionError struct {
	Check    string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %q", e.Check, e.Expected, e.Actual)
}
