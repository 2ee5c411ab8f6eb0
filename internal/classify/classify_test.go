package classify

import (
	"errors"
	"testing"
	"time"

	cperrors "github.com/manav03panchal/controleplus/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

// monday is 2026-01-05 10:30 BRT.
var monday = time.Date(2026, time.January, 5, 10, 30, 0, 0, brt)

func day(offset int) string {
	return monday.AddDate(0, 0, offset).Format(DateLayout)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(monday, monday.Add(13*time.Hour)))
	assert.Equal(t, 1, DaysBetween(monday, monday.Add(14*time.Hour)))
	assert.Equal(t, -5, DaysBetween(monday, monday.AddDate(0, 0, -5)))
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("timezone data not available")
	}
	before := time.Date(2026, time.March, 7, 0, 0, 0, 0, ny)
	after := time.Date(2026, time.March, 9, 0, 0, 0, 0, ny)
	assert.Equal(t, 2, DaysBetween(before, after))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-02-27", brt)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 27, 0, 0, 0, 0, brt), d)

	_, ok = ParseDate("", brt)
	assert.False(t, ok)
	_, ok = ParseDate("27/02/2026", brt)
	assert.False(t, ok)
}

// =============================================================================
// Release Status Tests
// =============================================================================

func TestReleaseStatus(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		level Level
		label string
	}{
		{"past", day(-1), LevelReleased, "Lançado"},
		{"today", day(0), LevelUrgent, "Faltam 0 dias"},
		{"tomorrow", day(1), LevelUrgent, "Faltam 1 dia"},
		{"15 days", day(15), LevelUrgent, "Faltam 15 dias"},
		{"16 days", day(16), LevelSoon, "Faltam 16 dias"},
		{"30 days", day(30), LevelSoon, "Faltam 30 dias"},
		{"31 days", day(31), LevelScheduled, "Faltam 31 dias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ReleaseStatus(tt.date, monday)
			require.NotNil(t, st)
			assert.Equal(t, tt.level, st.Level)
			assert.Equal(t, tt.label, st.Label)
		})
	}
}

func TestReleaseStatusPastHasNoDays(t *testing.T) {
	st := ReleaseStatus(day(-40), monday)
	require.NotNil(t, st)
	assert.Zero(t, st.Days)
}

func TestReleaseStatusMissingDate(t *testing.T) {
	assert.Nil(t, ReleaseStatus("", monday))
	assert.Nil(t, ReleaseStatus("soon", monday))
}

// =============================================================================
// Expiration Status Tests
// =============================================================================

func TestExpirationStatus(t *testing.T) {
	release := "2026-01-05"
	at := func(offset int) time.Time { return monday.AddDate(0, 0, offset) }

	tests := []struct {
		name  string
		now   time.Time
		level Level
		label string
	}{
		{"release day", at(0), LevelOK, "Vence em 90 dias"},
		{"D+29", at(29), LevelOK, "Vence em 61 dias"},
		{"D+30", at(30), LevelWarning, "Vence em 60 dias"},
		{"D+60", at(60), LevelUrgent, "Vence em 30 dias"},
		{"D+89", at(89), LevelUrgent, "Vence em 1 dia"},
		{"D+90", at(90), LevelToday, "Vence hoje"},
		{"D+91", at(91), LevelExpired, "Vencido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ExpirationStatus(release, tt.now)
			require.NotNil(t, st)
			assert.Equal(t, tt.level, st.Level)
			assert.Equal(t, tt.label, st.Label)
		})
	}

	assert.Nil(t, ExpirationStatus("", monday))
}

// =============================================================================
// Promotion Tests
// =============================================================================

func TestPromotionDaysLeft(t *testing.T) {
	tests := []struct {
		name  string
		end   string
		level Level
		label string
	}{
		{"yesterday", day(-1), LevelEnded, "Encerrada"},
		{"today", day(0), LevelCritical, "Termina hoje"},
		{"tomorrow", day(1), LevelCritical, "Termina amanhã"},
		{"2 days", day(2), LevelUrgent, "Faltam 2 dias"},
		{"30 days", day(30), LevelUrgent, "Faltam 30 dias"},
		{"31 days", day(31), LevelWarning, "Faltam 31 dias"},
		{"60 days", day(60), LevelWarning, "Faltam 60 dias"},
		{"61 days", day(61), LevelOK, "Faltam 61 dias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := PromotionDaysLeft(tt.end, monday)
			require.NotNil(t, st)
			assert.Equal(t, tt.level, st.Level)
			assert.Equal(t, tt.label, st.Label)
		})
	}
}

func TestPromotionEndsAtEndOfDay(t *testing.T) {
	lateNight := time.Date(2026, 1, 5, 23, 59, 59, 0, brt)
	st := PromotionDaysLeft("2026-01-05", lateNight)
	require.NotNil(t, st)
	assert.Equal(t, "Termina hoje", st.Label)

	nextMorning := time.Date(2026, 1, 6, 0, 0, 1, 0, brt)
	st = PromotionDaysLeft("2026-01-05", nextMorning)
	require.NotNil(t, st)
	assert.Equal(t, LevelEnded, st.Level)
}

func TestPromotionDaysLeftMissingDate(t *testing.T) {
	assert.Nil(t, PromotionDaysLeft("", monday))
}

// =============================================================================
// Blitz Tests
// =============================================================================

func TestBlitzCountdown(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		level Level
		label string
		days  int
	}{
		{"no date", "", LevelNone, "Sem data", NoDateDays},
		{"past", day(-2), LevelDone, "Realizada", -2},
		{"today", day(0), LevelToday, "Hoje", 0},
		{"10 days", day(10), LevelSoon, "Em 10 dias", 10},
		{"11 days", day(11), LevelLater, "Em 11 dias", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := BlitzCountdown(tt.date, monday)
			assert.Equal(t, tt.level, st.Level)
			assert.Equal(t, tt.label, st.Label)
			assert.Equal(t, tt.days, st.Days)
		})
	}
}

func TestBlitzWeek(t *testing.T) {
	wantStart := time.Date(2026, 1, 5, 0, 0, 0, 0, brt)
	nextStart := time.Date(2026, 1, 12, 0, 0, 0, 0, brt)

	tests := []struct {
		name  string
		now   time.Time
		start time.Time
	}{
		{"monday", monday, wantStart},
		{"wednesday", monday.AddDate(0, 0, 2), wantStart},
		{"friday night", time.Date(2026, 1, 9, 23, 0, 0, 0, brt), wantStart},
		{"saturday", monday.AddDate(0, 0, 5), nextStart},
		{"sunday", monday.AddDate(0, 0, 6), nextStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := BlitzWeek(tt.now)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, time.Friday, w.End.Weekday())
			assert.Equal(t, 23, w.End.Hour())
			assert.Equal(t, tt.start.AddDate(0, 0, 5).Add(-time.Millisecond), w.End)
		})
	}
}

func TestWindow(t *testing.T) {
	w := BlitzWeek(monday)
	assert.Equal(t, "05/01 a 09/01", w.Label())
	assert.True(t, w.Contains(time.Date(2026, 1, 9, 0, 0, 0, 0, brt)))
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(time.Date(2026, 1, 10, 0, 0, 0, 0, brt)))
	assert.False(t, w.Contains(time.Date(2026, 1, 4, 0, 0, 0, 0, brt)))
}

// =============================================================================
// Weekday Tests
// =============================================================================

func TestCheckWeekday(t *testing.T) {
	assert.NoError(t, CheckWeekday(""))
	assert.NoError(t, CheckWeekday("2026-01-09"))

	err := CheckWeekday("2026-01-10")
	require.Error(t, err)
	assert.ErrorIs(t, err, cperrors.ErrWeekendDate)
	assert.True(t, cperrors.IsUserError(err))

	var weekend *WeekendError
	require.True(t, errors.As(err, &weekend))
	assert.Equal(t, "Sábado", weekend.Weekday)

	err = CheckWeekday("2026-01-11")
	require.True(t, errors.As(err, &weekend))
	assert.Equal(t, "Domingo", weekend.Weekday)

	err = CheckWeekday("10/01/2026")
	assert.ErrorIs(t, err, cperrors.ErrInvalidDate)
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Segunda-feira", WeekdayName(time.Monday))
	assert.Equal(t, "Sábado", WeekdayName(time.Saturday))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "27/02/2026", FormatDate("2026-02-27"))
	assert.Equal(t, "-", FormatDate(""))
	assert.Equal(t, "logo", FormatDate("logo"))
}
