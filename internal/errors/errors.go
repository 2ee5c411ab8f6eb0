// Package errors provides consistent error types for the Controle Plus CLI.
// It defines three main categories: UserError (fixable by user), SystemError (system issues),
// and RecoverableError (retried on the next cycle).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrNotFound            = errors.New("record not found")
	ErrUnknownKind         = errors.New("unknown record kind")
	ErrWeekendDate         = errors.New("date falls on a weekend")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidValue        = errors.New("invalid amount")
	ErrInvalidURL          = errors.New("invalid URL")
	ErrImmutable           = errors.New("record cannot be changed after creation")
	ErrMissingArtist       = errors.New("artist is required")
	ErrMissingMusic        = errors.New("song is required")
	ErrDuplicateMarket     = errors.New("market already exists")
	ErrSheetsNotConfigured = errors.New("spreadsheet URL not configured")
	ErrSubmissionRejected  = errors.New("submission rejected by endpoint")
	ErrBackupCorrupted     = errors.New("backup file is corrupted")
	ErrNotDurable          = errors.New("changes were not saved to disk")
	ErrDiskFull            = errors.New("disk full")
	ErrDatabaseCorrupted   = errors.New("database corrupted")
	ErrNetworkUnavailable  = errors.New("network unavailable")
	ErrLockHeld            = errors.New("database locked by another process")
	ErrTimeout             = errors.New("operation timed out")
	ErrPermissionDenied    = errors.New("permission denied")
)

// UserError represents an error that the user can fix.
// Examples: invalid input, weekend dates, unknown ids.
type UserError struct {
	Message    string // What happened
	Suggestion string // How to fix it
	Field      string // The field/input that caused the error (optional)
	Value      string // The invalid value (optional)
	Cause      error  // Sentinel or underlying error (optional)
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Field != "" && e.Value != "" {
		msg = fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// WithCause attaches a sentinel so callers can match the error with errors.Is.
func (e *UserError) WithCause(cause error) *UserError {
	e.Cause = cause
	return e
}

// NewUserError creates a new UserError.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewUserErrorWithField creates a new UserError with field context.
func NewUserErrorWithField(field, value, message, suggestion string) *UserError {
	return &UserError{
		Message:    message,
		Field:      field,
		Value:      value,
		Suggestion: suggestion,
	}
}

// NotFound returns a UserError for a missing record of the given label.
func NotFound(label, id string) *UserError {
	return NewUserErrorWithField("id", id,
		label+" not found",
		"List the records to find a valid id").WithCause(ErrNotFound)
}

// SystemError represents a system-level error that the user cannot directly fix.
// Examples: disk full, locked database, database corruption.
type SystemError struct {
	Message string // What happened
	Cause   error  // The underlying error
	Op      string // The operation that failed (optional)
}

func (e *SystemError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Cause
}

// NewSystemError creates a new SystemError.
func NewSystemError(message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
	}
}

// NewSystemErrorWithOp creates a new SystemError with operation context.
func NewSystemErrorWithOp(op, message string, cause error) *SystemError {
	return &SystemError{
		Message: message,
		Cause:   cause,
		Op:      op,
	}
}

// RecoverableError represents an error that goes away on a later attempt.
// Examples: temporary network failure, endpoint timeout.
type RecoverableError struct {
	Message string // What happened
	Cause   error  // The underlying error
}

func (e *RecoverableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RecoverableError) Unwrap() error {
	return e.Cause
}

// NewRecoverableError creates a new RecoverableError.
func NewRecoverableError(message string, cause error) *RecoverableError {
	return &RecoverableError{
		Message: message,
		Cause:   cause,
	}
}

// IsUserError checks if an error is a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// IsSystemError checks if an error is a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// IsRecoverableError checks if an error is a RecoverableError.
func IsRecoverableError(err error) bool {
	var re *RecoverableError
	return errors.As(err, &re)
}

// AsUserError extracts a UserError from an error chain.
func AsUserError(err error) (*UserError, bool) {
	var ue *UserError
	ok := errors.As(err, &ue)
	return ue, ok
}

// AsSystemError extracts a SystemError from an error chain.
func AsSystemError(err error) (*SystemError, bool) {
	var se *SystemError
	ok := errors.As(err, &se)
	return se, ok
}

// Is is re-exported from the standard errors package for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is re-exported from the standard errors package for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is re-exported from the standard errors package for convenience.
func New(text string) error {
	return errors.New(text)
}

// Join is re-exported from the standard errors package for convenience.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
