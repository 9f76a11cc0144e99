package highlight

import (
	"errors"
	"fmt"
)

// ErrMatchTimeout is matched by every *TimeoutError.
var ErrMatchTimeout = errors.New("match budget exhausted")

// CompileError reports a pattern the engine rejects.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// TimeoutError reports a highlight run cut short by its budget. Matches is
// the number of matches found before the cut.
type TimeoutError struct {
	Pattern string
	Matches int
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("highlight %q stopped after %d matches: %v", e.Pattern, e.Matches, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) Is(target error) bool { return target == ErrMatchTimeout }
