package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/controleplus/internal/errors"
)

// DateParseError represents a date parsing error with helpful examples.
type DateParseError struct {
	Input    string
	Field    string
	Message  string
	Examples []string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap matches errors.ErrInvalidDate.
func (e *DateParseError) Unwrap() error {
	return errors.ErrInvalidDate
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"2026-03-13",
	"13/03/2026",
	"+7d",
	"amanhã",
	"next friday",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(field, input, message string) *DateParseError {
	return &DateParseError{
		Input:    input,
		Field:    field,
		Message:  message,
		Examples: DateExamples,
	}
}

// FormatWithExamples returns the error message with example suggestions.
func (e *DateParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ToUserError converts the error to a UserError for consistent handling.
func (e *DateParseError) ToUserError() *errors.UserError {
	suggestion := errors.GetSuggestion(errors.ErrInvalidDate)
	if suggestion == "" && len(e.Examples) > 0 {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}
	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion).
		WithCause(e)
}
