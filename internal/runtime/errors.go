package runtime

import (
	"errors"

	cperrors "github.com/manav03panchal/controleplus/internal/errors"
)

// Common errors.
var (
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrAborted              = errors.New("aborted")
)

// Suggestions provides helpful suggestions for command-level errors.
var Suggestions = map[error]string{
	ErrConfirmationRequired: "Re-run with --yes when not using an interactive terminal.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	if suggestion := cperrors.GetSuggestion(err); suggestion != "" {
		return suggestion
	}
	return cperrors.GetCategorySuggestion(err)
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return err.Error() + "\n" + suggestion
		}
	}
	return cperrors.FormatByCategory(err)
}
