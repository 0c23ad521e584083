package format

import "errors"

// Sentinel errors for format operations.
var (
	// ErrEmpty is returned when the template string is empty.
	ErrEmpty = errors.New("format is empty")

	// ErrParse is returned when the template fails to parse.
	ErrParse = errors.New("format parse error")

	// ErrExecute is returned when template execution fails.
	ErrExecute = errors.New("format execution error")
)
