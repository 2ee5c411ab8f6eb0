package parser

import (
	"strings"
	"testing"
	"time"
)

// FuzzParseList checks that list flags yield trimmed, unique, non-empty items.
// Run with: go test ./internal/parser -fuzz=FuzzParseList -fuzztime=30s
func FuzzParseList(f *testing.F) {
	seeds := []string{
		"Goiânia, Anápolis",
		"a,,b, a",
		",,,",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		seen := make(map[string]bool)
		for _, item := range ParseList(input) {
			if item == "" || strings.TrimSpace(item) != item || seen[item] {
				t.Fatalf("ParseList(%q) returned bad item %q", input, item)
			}
			seen[item] = true
		}
	})
}

// FuzzParseDate tests date parsing with fuzz inputs.
// Run with: go test ./internal/parser -fuzz=FuzzParseDate -fuzztime=30s
func FuzzParseDate(f *testing.F) {
	seeds := []string{
		"2026-03-06",
		"06/03/2026",
		"next friday",
		"amanhã",
		"31/02/2026",
		"99999-99-99",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	f.Fuzz(func(t *testing.T, input string) {
		date, err := ParseDate(input, now)
		if err != nil || date == "" {
			return
		}
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			t.Fatalf("ParseDate(%q) = %q is not YYYY-MM-DD", input, date)
		}
	})
}
