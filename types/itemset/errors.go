package itemset

import (
	"fmt"
)

// InputFileUnreadable is returned when the transaction file is missing or
// cannot be read.
type InputFileUnreadable struct {
	Path string
	Err  error
}

func (e *InputFileUnreadable) Error() string {
	return fmt.Sprintf("unable to read input file %q: %v", e.Path, e.Err)
}

func (e *InputFileUnreadable) Unwrap() error {
	return e.Err
}

// MalformedInputError is returned for a data line holding a token that is
// not a positive integer.
type MalformedInputError struct {
	Path   string
	Line   int
	Token  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "non-numeric value"
	}
	return fmt.Sprintf("invalid input file %q: line %d: %s %q", e.Path, e.Line, reason, e.Token)
}

// EmptyLineError is returned for a blank line.
type EmptyLineError struct {
	Path string
	Line int
}

func (e *EmptyLineError) Error() string {
	return fmt.Sprintf("invalid input file %q: line %d: empty line", e.Path, e.Line)
}
