package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/controleplus/internal/errors"
)

// Wednesday.
var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2026-03-13", "2026-03-13"},
		{"iso_padded", "  2026-03-13 ", "2026-03-13"},
		{"brazilian", "13/03/2026", "2026-03-13"},
		{"brazilian_short_day", "3/4/2026", "2026-04-03"},
		{"brazilian_dashes", "13-03-2026", "2026-03-13"},
		{"relative_days", "+7d", "2026-03-11"},
		{"relative_weeks", "+2w", "2026-03-18"},
		{"relative_zero", "+0d", "2026-03-04"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateNaturalLanguage(t *testing.T) {
	got, err := ParseDate("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", got)

	got, err = ParseDate("amanhã", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", got)
}

func TestParseDateRejectsImpossibleDay(t *testing.T) {
	_, err := ParseDate("31/02/2026", now)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidDate)

	var perr *DateParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "date", perr.Field)
	assert.Equal(t, "no such day", perr.Message)
}

func TestParseDateGarbage(t *testing.T) {
	_, err := ParseDateField("release", "definitely not a date", now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid release")
	assert.ErrorIs(t, err, errors.ErrInvalidDate)
}

func TestDateParseErrorFormatting(t *testing.T) {
	err := NewDateError("end", "xyz", "could not parse date")
	out := err.FormatWithExamples()
	assert.Contains(t, out, "invalid end 'xyz'")
	assert.Contains(t, out, "Valid examples:")
	assert.Contains(t, out, "13/03/2026")

	uerr := err.ToUserError()
	assert.Equal(t, "end", uerr.Field)
	assert.NotEmpty(t, uerr.Suggestion)
	assert.ErrorIs(t, uerr, errors.ErrInvalidDate)
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseList(" a, b,,c ,a"))
	assert.Nil(t, ParseList(""))
	assert.Nil(t, ParseList(" , "))
	assert.Equal(t, []string{"r1", "r2", "r3"}, ParseLists([]string{"r1,r2", "r3", "r1"}))
}
