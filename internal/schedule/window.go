package schedule

import (
	"strings"
	"time"

	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

// WindowDate couples a calendar date with the lower-cased weekday names used
// for template matching downstream.
type WindowDate struct {
	Date     time.Time
	DayFull  string
	DayShort string
}

// Window produces the sequence of calendar dates from start through
// start+numDays, inclusive of both endpoints. The start is truncated to its
// date component. A negative numDays is a programming error and is rejected
// rather than yielding an empty window.
func Window(start time.Time, numDays int) ([]WindowDate, error) {
	if numDays < 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidWindow, "")
	}

	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	dates := make([]WindowDate, 0, numDays+1)
	for i := 0; i <= numDays; i++ {
		d := start.AddDate(0, 0, i)
		full := strings.ToLower(d.Weekday().String())
		dates = append(dates, WindowDate{Date: d, DayFull: full, DayShort: full[:3]})
	}
	return dates, nil
}

// MatchesDay reports whether a template day field matches a date's weekday.
// The value is trimmed and lower-cased, then compared against both the full
// name and the 3-letter abbreviation. Empty or unrecognized values match
// nothing; garbled day data excludes the template instead of failing the
// whole expansion.
func MatchesDay(day, dayFull, dayShort string) bool {
	day = strings.ToLower(strings.TrimSpace(day))
	if day == "" {
		return false
	}
	return day == dayFull || day == dayShort
}
