// Package validate provides input validation helpers for the Controle Plus CLI.
package validate

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/controleplus/internal/errors"
)

const (
	// MaxIDLength is the maximum length for a record identifier.
	MaxIDLength = 64
	// MaxURLLength is the maximum length for a URL.
	MaxURLLength = 2048
	// MaxNameLength is the maximum length for names, titles and subjects.
	MaxNameLength = 200
	// MaxNoteLength is the maximum length for details, bios and email bodies.
	MaxNoteLength = 20000
)

// DateLayout is the stored date format.
const DateLayout = "2006-01-02"

// idRegex accepts generated ids (id_<uuid>) and ids imported from older
// backups (numeric timestamps).
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ID validates a record identifier.
func ID(id string) error {
	if id == "" {
		return errors.NewUserError("id cannot be empty", "Provide a record id")
	}
	if len(id) > MaxIDLength {
		return errors.NewUserErrorWithField("id", id,
			"id too long",
			"Ids are 64 characters or fewer")
	}
	if !idRegex.MatchString(id) {
		return errors.NewUserErrorWithField("id", id,
			"invalid id format",
			"Copy the id from the list output")
	}
	return nil
}

// Name validates a required short text field.
func Name(field, value string) error {
	if err := NonEmpty(field, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return errors.NewUserErrorWithField(field, TruncateString(value, 20),
			field+" too long",
			"Keep it to 200 characters or fewer")
	}
	return nil
}

// Note validates a long free text field.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError(
			"text too long",
			"Keep it to 20000 characters or fewer")
	}
	return nil
}

// Date validates an optional YYYY-MM-DD date.
func Date(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return errors.NewUserErrorWithField(field, value,
			"invalid date",
			errors.GetSuggestion(errors.ErrInvalidDate)).WithCause(errors.ErrInvalidDate)
	}
	return nil
}

// Email validates an optional email address.
func Email(value string) error {
	if value == "" {
		return nil
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return errors.NewUserErrorWithField("email", value,
			"invalid email address",
			"Use a plain address like contato@radio.com.br")
	}
	return nil
}

// OneOf validates that value is one of allowed. Empty values pass.
func OneOf[T ~string](field string, value T, allowed []T) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return errors.NewUserErrorWithField(field, string(value),
		"invalid "+field,
		"Use one of: "+strings.Join(names, ", "))
}

// WebURL validates an optional link stored on a record (website, audio file).
// Both http and https are accepted.
func WebURL(field, rawURL string) error {
	if rawURL == "" {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Hostname() == "" {
		return errors.NewUserErrorWithField(field, rawURL,
			"invalid link",
			"Links start with https:// or http://").WithCause(errors.ErrInvalidURL)
	}
	return nil
}

// URL validates the spreadsheet endpoint the CLI reads submissions from
// and posts stations to.
func URL(rawURL string) error {
	if rawURL == "" {
		return errors.NewUserError("URL cannot be empty", "Provide a valid URL").WithCause(errors.ErrInvalidURL)
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer").WithCause(errors.ErrInvalidURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL format",
			"Provide a valid URL starting with https://").WithCause(errors.ErrInvalidURL)
	}

	// Check scheme
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL scheme",
			"URLs must use https:// (or http:// for localhost)").WithCause(errors.ErrInvalidURL)
	}

	// Check hostname exists
	hostname := parsed.Hostname()
	if hostname == "" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL: missing hostname",
			"Provide a valid URL like https://script.google.com/macros/s/.../exec").WithCause(errors.ErrInvalidURL)
	}

	isLocalhost := hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"

	// Require HTTPS for non-localhost
	if parsed.Scheme == "http" && !isLocalhost {
		return errors.NewUserErrorWithField("url", rawURL,
			"HTTP not allowed for external URLs",
			"Use https://. HTTP is only allowed for localhost.").WithCause(errors.ErrInvalidURL)
	}

	if !isLocalhost {
		if ip := net.ParseIP(hostname); ip != nil && isInternalIP(ip) {
			return errors.NewUserErrorWithField("url", hostname,
				"Internal IP addresses not allowed",
				"The spreadsheet endpoint must be a public service").WithCause(errors.ErrInvalidURL)
		}
	}

	return nil
}

// isInternalIP checks if an IP is in a private/internal range.
func isInternalIP(ip net.IP) bool {
	privateRanges := []string{
		"10.0.0.0/8",     // RFC 1918
		"172.16.0.0/12",  // RFC 1918
		"192.168.0.0/16", // RFC 1918
		"127.0.0.0/8",    // Loopback (except explicit localhost check)
		"169.254.0.0/16", // Link-local
		"fc00::/7",       // IPv6 private
		"fe80::/10",      // IPv6 link-local
		"::1/128",        // IPv6 loopback
	}

	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		if network.Contains(ip) {
			return true
		}
	}

	return false
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}
