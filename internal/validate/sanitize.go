package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeField trims a single-line form value and drops control characters.
func SanitizeField(s string) string {
	s = strings.TrimSpace(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeNote cleans a multi-line text for safe storage.
func SanitizeNote(note string) string {
	note = strings.TrimSpace(note)

	// Remove null bytes
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return StripControlChars(note)
}

// StripControlChars removes all control characters except newlines and tabs.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TruncateString shortens s to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SafeFilename converts a string to a safe filename.
func SafeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"\x00", "",
	)
	s = replacer.Replace(s)

	// Trim whitespace and dots from ends
	s = strings.Trim(s, " .")

	if len(s) > 200 {
		s = s[:200]
	}

	return s
}
