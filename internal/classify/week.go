package classify

import (
	"fmt"
	"time"

	"github.com/manav03panchal/controleplus/internal/errors"
)

// Window is a closed time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label formats the window as "dd/mm a dd/mm".
func (w Window) Label() string {
	return w.Start.Format("02/01") + " a " + w.End.Format("02/01")
}

// BlitzWeek returns the Monday to Friday window shown on the blitz agenda.
// On weekends it is the coming week; otherwise the current one.
func BlitzWeek(now time.Time) Window {
	var offset int
	switch wd := now.Weekday(); wd {
	case time.Saturday:
		offset = 2
	case time.Sunday:
		offset = 1
	default:
		offset = int(time.Monday - wd)
	}

	start := Midnight(now).AddDate(0, 0, offset)
	y, m, d := start.AddDate(0, 0, 4).Date()
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), start.Location())
	return Window{Start: start, End: end}
}

// WeekdayName returns the Portuguese name of a weekday.
func WeekdayName(wd time.Weekday) string {
	return [...]string{
		"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
		"Quinta-feira", "Sexta-feira", "Sábado",
	}[wd]
}

// FormatDate formats a stored date as dd/mm/yyyy, or "-" when empty.
func FormatDate(date string) string {
	t, ok := ParseDate(date, time.Local)
	if !ok {
		if date == "" {
			return "-"
		}
		return date
	}
	return t.Format("02/01/2006")
}

// WeekendError reports a release or blitz date that falls on a weekend.
type WeekendError struct {
	Date    string
	Weekday string
}

func (e *WeekendError) Error() string {
	return fmt.Sprintf("%s falls on a %s", e.Date, e.Weekday)
}

// Is matches errors.ErrWeekendDate.
func (e *WeekendError) Is(target error) bool {
	return target == errors.ErrWeekendDate
}

// CheckWeekday rejects dates on Saturday or Sunday. Empty dates pass.
func CheckWeekday(date string) error {
	if date == "" {
		return nil
	}
	t, ok := ParseDate(date, time.Local)
	if !ok {
		return errors.NewUserErrorWithField("date", date,
			"invalid date",
			"Use YYYY-MM-DD").
			WithCause(errors.ErrInvalidDate)
	}

	wd := t.Weekday()
	if wd != time.Saturday && wd != time.Sunday {
		return nil
	}
	weekend := &WeekendError{Date: date, Weekday: WeekdayName(wd)}
	return errors.NewUserErrorWithField("date", date,
		fmt.Sprintf("date falls on a weekend (%s)", weekend.Weekday),
		errors.GetSuggestion(errors.ErrWeekendDate)).
		WithCause(weekend)
}
