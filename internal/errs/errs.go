// Package errs defines the domain error taxonomy used across layers for
// stable error mapping. Each failure carries a disjoint kind sentinel so
// callers can branch on cause with errors.Is: a duplicate-key conflict is
// distinguishable from a write-write race.
package errs

import (
	"errors"
	"fmt"
)

// Kind sentinels. These are never returned directly; they are wrapped by
// Error values constructed with the helpers below.
var (
	// ErrInvalidInput indicates the caller supplied malformed or missing data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation, detected either by
	// pre-check or by the store's unique constraint at commit.
	ErrConflict = errors.New("conflict")

	// ErrStaleWrite indicates optimistic concurrency failure: the row was
	// modified by another writer between read and write.
	ErrStaleWrite = errors.New("concurrent modification")
)

// Error is a domain failure with a caller-facing message and a kind that
// errors.Is matches against one of the sentinels above.
type Error struct {
	kind    error
	message string
	fields  []string
}

// Error returns the caller-facing message.
func (e *Error) Error() string { return e.message }

// Unwrap exposes the kind sentinel for errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// Fields returns per-field validation messages, if any.
// Only populated for invalid-input errors built with Validation.
func (e *Error) Fields() []string { return e.fields }

// InvalidInput builds an invalid-input error with a formatted message.
func InvalidInput(format string, args ...any) error {
	return &Error{kind: ErrInvalidInput, message: fmt.Sprintf(format, args...)}
}

// Validation builds an invalid-input error carrying one message per
// invalid field.
func Validation(fields ...string) error {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0]
	}
	return &Error{kind: ErrInvalidInput, message: msg, fields: fields}
}

// NotFound builds a not-found error with a formatted message.
func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

// Conflict builds a duplicate-key conflict error with a formatted message.
func Conflict(format string, args ...any) error {
	return &Error{kind: ErrConflict, message: fmt.Sprintf(format, args...)}
}

// StaleWrite builds a concurrent-modification error with a formatted message.
func StaleWrite(format string, args ...any) error {
	return &Error{kind: ErrStaleWrite, message: fmt.Sprintf(format, args...)}
}
