package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrNotFound:            "Use the kind's 'list' command (or 'controleplus archive list') to find a valid id.",
	ErrUnknownKind:         "Use one of: radios, cityhalls, businesses, artists, music, promotions, events, blitz, campaigns.",
	ErrWeekendDate:         "Releases and blitz visits happen Monday to Friday. Pick a weekday.",
	ErrInvalidDate:         "Use YYYY-MM-DD, DD/MM/YYYY, or an expression like 'next friday'.",
	ErrInvalidValue:        "Write amounts in Brazilian format, like '1.234,56'.",
	ErrInvalidURL:          "Provide a valid URL starting with https:// (or http:// for localhost).",
	ErrImmutable:           "Email campaigns are a historical record. Archive it instead.",
	ErrMissingArtist:       "Pass --artist with the id of an existing artist.",
	ErrMissingMusic:        "Pass --music with the id of an existing song.",
	ErrDuplicateMarket:     "Use 'controleplus market list' to see existing markets.",
	ErrSheetsNotConfigured: "Set it with 'controleplus sync url <URL>'.",
	ErrSubmissionRejected:  "Check the spreadsheet script deployment and try again.",
	ErrBackupCorrupted:     "The file is not a valid backup. Nothing was changed.",

	// System errors
	ErrNotDurable:         "Your changes are kept for this session. Run 'controleplus backup export' now.",
	ErrDiskFull:           "Free up disk space and try again. Export a backup as soon as possible.",
	ErrDatabaseCorrupted:  "Save what is readable with 'controleplus backup salvage', then restore a backup with 'controleplus backup import'.",
	ErrNetworkUnavailable: "Check your internet connection. Sync retries on the next cycle.",
	ErrLockHeld:           "Another controleplus instance is running. Stop 'controleplus sync run' or the dashboard first.",
	ErrTimeout:            "The spreadsheet endpoint took too long. Sync retries on the next cycle.",
	ErrPermissionDenied:   "Check file permissions in your data directory (~/.local/share/controleplus/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Explicit suggestions win over the sentinel table
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	if IsUserError(err) {
		return "Check your input and try again. Use --help for usage information."
	}
	if IsSystemError(err) {
		return "This is a system error. Check system resources and try again."
	}
	if IsRecoverableError(err) {
		return "This error may resolve itself. The next sync cycle will try again."
	}
	return ""
}
