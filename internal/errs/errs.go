// Package errs defines the error kinds shared by the store, the filter
// builder and the interchange layer. Callers match them with errors.As.
package errs

import (
	"fmt"
	"strings"
)

// ValidationError reports caller-supplied input that was rejected before
// reaching the store.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Invalid is shorthand for constructing a ValidationError.
func Invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// StorageError wraps any failure returned by the database. Constraint is set
// when the write was rejected by a UNIQUE or PRIMARY KEY constraint.
type StorageError struct {
	Op         string
	Err        error
	Constraint bool
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err with the operation name. A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err, Constraint: isConstraint(err)}
}

// SQLite reports these as e.g.
// "constraint failed: UNIQUE constraint failed: sequenced_items.issue_num, sequenced_items.vol_num (1555)"
func isConstraint(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

// FormatError is returned when an interchange file's header matches none of
// the known record kinds. Nothing is imported.
type FormatError struct {
	Header []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized header: %s", strings.Join(e.Header, ","))
}

// ImportRowError describes a single interchange row that could not be parsed
// or inserted. Line is 1-based and counts the header row.
type ImportRowError struct {
	Line int
	Err  error
}

func (e *ImportRowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ImportRowError) Unwrap() error { return e.Err }
