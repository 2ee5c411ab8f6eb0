// Package classify turns stored calendar dates into countdown statuses for
// releases, promotions and blitz visits.
//
// Every function takes the current time explicitly and compares local
// calendar days, so results do not drift across daylight saving changes.
package classify

import (
	"fmt"
	"time"
)

// DateLayout is the stored date format.
const DateLayout = "2006-01-02"

// ReleaseWindow is how long a release stays in promotion.
const ReleaseWindow = 90

// Level is the severity bucket of a Status.
type Level string

// Levels.
const (
	LevelNone      Level = "none"
	LevelReleased  Level = "released"
	LevelScheduled Level = "scheduled"
	LevelSoon      Level = "soon"
	LevelUrgent    Level = "urgent"
	LevelCritical  Level = "critical"
	LevelWarning   Level = "warning"
	LevelOK        Level = "ok"
	LevelToday     Level = "today"
	LevelExpired   Level = "expired"
	LevelEnded     Level = "ended"
	LevelDone      Level = "done"
	LevelLater     Level = "later"
)

// Status is a classified date. Days is the number of calendar days from
// today to the date; it is zero for LevelReleased and LevelNone.
type Status struct {
	Level Level
	Label string
	Days  int
}

// ParseDate parses a stored YYYY-MM-DD date as local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from from to to.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// ReleaseStatus classifies an upcoming release. It returns nil when
// releaseDate is empty or not a date.
func ReleaseStatus(releaseDate string, now time.Time) *Status {
	release, ok := ParseDate(releaseDate, now.Location())
	if !ok {
		return nil
	}

	today := Midnight(now)
	if release.Before(today) {
		return &Status{Level: LevelReleased, Label: "Lançado"}
	}

	days := DaysBetween(today, release)
	label := fmt.Sprintf("Faltam %d %s", days, plural(days, "dia", "dias"))
	switch {
	case days <= 15:
		return &Status{Level: LevelUrgent, Label: label, Days: days}
	case days <= 30:
		return &Status{Level: LevelSoon, Label: label, Days: days}
	}
	return &Status{Level: LevelScheduled, Label: label, Days: days}
}

// ExpirationStatus classifies how long a released song stays in its
// promotion window of ReleaseWindow days. It returns nil when releaseDate is
// empty or not a date.
func ExpirationStatus(releaseDate string, now time.Time) *Status {
	release, ok := ParseDate(releaseDate, now.Location())
	if !ok {
		return nil
	}

	expiration := release.AddDate(0, 0, ReleaseWindow)
	days := DaysBetween(Midnight(now), expiration)
	label := fmt.Sprintf("Vence em %d %s", days, plural(days, "dia", "dias"))
	switch {
	case days < 0:
		return &Status{Level: LevelExpired, Label: "Vencido", Days: days}
	case days == 0:
		return &Status{Level: LevelToday, Label: "Vence hoje", Days: days}
	case days <= 30:
		return &Status{Level: LevelUrgent, Label: label, Days: days}
	case days <= 60:
		return &Status{Level: LevelWarning, Label: label, Days: days}
	}
	return &Status{Level: LevelOK, Label: label, Days: days}
}

// PromotionDaysLeft classifies the time left until a promotion's end date.
// The promotion runs through the whole end day. It returns nil when endDate
// is empty or not a date.
func PromotionDaysLeft(endDate string, now time.Time) *Status {
	end, ok := ParseDate(endDate, now.Location())
	if !ok {
		return nil
	}

	y, m, d := end.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), end.Location())
	if endOfDay.Before(now) {
		return &Status{Level: LevelEnded, Label: "Encerrada"}
	}

	days := DaysBetween(Midnight(now), end)
	if days < 0 {
		return &Status{Level: LevelEnded, Label: "Encerrada"}
	}

	var label string
	switch days {
	case 0:
		label = "Termina hoje"
	case 1:
		label = "Termina amanhã"
	default:
		label = fmt.Sprintf("Faltam %d dias", days)
	}

	switch {
	case days <= 1:
		return &Status{Level: LevelCritical, Label: label, Days: days}
	case days <= 30:
		return &Status{Level: LevelUrgent, Label: label, Days: days}
	case days <= 60:
		return &Status{Level: LevelWarning, Label: label, Days: days}
	}
	return &Status{Level: LevelOK, Label: label, Days: days}
}

// NoDateDays sorts undated blitz visits after every dated one.
const NoDateDays = 9999

// BlitzCountdown classifies a blitz visit date.
func BlitzCountdown(eventDate string, now time.Time) Status {
	date, ok := ParseDate(eventDate, now.Location())
	if !ok {
		return Status{Level: LevelNone, Label: "Sem data", Days: NoDateDays}
	}

	days := DaysBetween(Midnight(now), date)
	switch {
	case days < 0:
		return Status{Level: LevelDone, Label: "Realizada", Days: days}
	case days == 0:
		return Status{Level: LevelToday, Label: "Hoje", Days: days}
	case days <= 10:
		return Status{Level: LevelSoon, Label: fmt.Sprintf("Em %d dias", days), Days: days}
	}
	return Status{Level: LevelLater, Label: fmt.Sprintf("Em %d dias", days), Days: days}
}
