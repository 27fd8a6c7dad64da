package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrSourceNotFound is returned when the persisted source table is missing
	ErrSourceNotFound = errors.New("source table not found")

	// ErrMalformedTable is returned when the source cannot be read as a table
	ErrMalformedTable = errors.New("malformed source table")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// MalformedTableError reports a source that is unreadable or not tabular.
// It matches ErrMalformedTable with errors.Is.
type MalformedTableError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedTableError) Error() string {
	msg := fmt.Sprintf("malformed source table %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedTableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedTable) match any MalformedTableError.
func (e *MalformedTableError) Is(target error) bool {
	return target == ErrMalformedTable
}
