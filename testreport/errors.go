package testreport

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned when the report file path is empty or blank.
	ErrEmptyPath = errors.New("report file path cannot be empty")

	// ErrNilFailure is returned when a nil failure is added to a group.
	ErrNilFailure = errors.New("failure cannot be nil")

	// ErrSourceNotFound is returned when the report file does not exist.
	ErrSourceNotFound = errors.New("report file does not exist")

	// ErrSourceNotReadable is returned when the report file exists but
	// cannot be opened for reading.
	ErrSourceNotReadable = errors.New("report file is not readable")

	// ErrNegativeTime is returned when a failure is constructed with a
	// negative execution time.
	ErrNegativeTime = errors.New("time cannot be negative")
)

// ParseError wraps any failure to locate, read or parse a report file,
// carrying the offending path for diagnostics. Callers can match the
// underlying condition with errors.Is (e.g. ErrSourceNotFound).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse XML file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
