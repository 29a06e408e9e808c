// Package common holds errors shared across the import domain.
package common

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("requested item not found")
	ErrConflict = errors.New("item already exists or conflict")
)

// FatalInputError rejects a whole import run before orchestration starts:
// empty or corrupt uploads, unsupported file extensions.
type FatalInputError struct {
	Reason string
}

func (e *FatalInputError) Error() string {
	return e.Reason
}

// NewFatalInput builds a FatalInputError with a formatted reason.
func NewFatalInput(format string, args ...any) *FatalInputError {
	return &FatalInputError{Reason: fmt.Sprintf(format, args...)}
}

// IsFatalInput reports whether err is (or wraps) a FatalInputError.
func IsFatalInput(err error) bool {
	var fe *FatalInputError
	return errors.As(err, &fe)
}

// ParseError is a structural failure inside one of the format parsers.
// It is fatal for the file. Hint carries a human diagnostic derived from
// the underlying parser's message.
type ParseError struct {
	Format string
	Hint   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("failed to parse %s file: %v (%s)", e.Format, e.Err, e.Hint)
	}
	return fmt.Sprintf("failed to parse %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
