// Package parser turns command-line input into stored values: calendar dates
// typed in several notations and comma-separated lists.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// DateLayout is the stored date format.
const DateLayout = "2006-01-02"

// brDateRegex matches DD/MM/YYYY and DD-MM-YYYY.
var brDateRegex = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})$`)

// relativeRegex matches offsets like "+3d" or "+2w".
var relativeRegex = regexp.MustCompile(`^\+(\d+)([dw])$`)

// languages are tried in order for natural language dates.
var languages = []string{"pt", "en"}

// ParseDate parses a date typed on the command line and returns it as
// YYYY-MM-DD. It accepts the stored format, the Brazilian DD/MM/YYYY, a day
// offset such as "+7d", and natural language in Portuguese or English
// ("amanhã", "next friday"), resolved against now. Weekday names resolve
// to the next such day.
func ParseDate(input string, now time.Time) (string, error) {
	return ParseDateField("date", input, now)
}

// ParseDateField is ParseDate with the flag name used in error messages.
func ParseDateField(field, input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	if t, err := time.ParseInLocation(DateLayout, input, now.Location()); err == nil {
		return t.Format(DateLayout), nil
	}

	if m := brDateRegex.FindStringSubmatch(input); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		if t.Day() != day || int(t.Month()) != month {
			return "", NewDateError(field, input, "no such day")
		}
		return t.Format(DateLayout), nil
	}

	if m := relativeRegex.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", NewDateError(field, input, "offset too large")
		}
		if m[2] == "w" {
			n *= 7
		}
		return now.AddDate(0, 0, n).Format(DateLayout), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		Languages:           languages,
		PreferredDateSource: dateparser.Future,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return "", NewDateError(field, input, "could not parse date")
	}
	return result.Time.In(now.Location()).Format(DateLayout), nil
}
