package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/acadhub/faculty-timetable-api/pkg/errors"
)

func TestWindowInclusiveEndpoints(t *testing.T) {
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC) // a Monday
	dates, err := Window(start, 14)
	require.NoError(t, err)

	require.Len(t, dates, 15)
	assert.Equal(t, start, dates[0].Date)
	assert.Equal(t, start.AddDate(0, 0, 14), dates[14].Date)

	for i := 1; i < len(dates); i++ {
		assert.Equal(t, dates[i-1].Date.AddDate(0, 0, 1), dates[i].Date, "dates must be contiguous")
	}
}

func TestWindowZeroDays(t *testing.T) {
	start := time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)
	dates, err := Window(start, 0)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "wednesday", dates[0].DayFull)
	assert.Equal(t, "wed", dates[0].DayShort)
}

func TestWindowNegativeDaysRejected(t *testing.T) {
	_, err := Window(time.Now(), -1)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidWindow.Code, appErr.Code)
}

func TestWindowTruncatesStartTime(t *testing.T) {
	start := time.Date(2026, 2, 2, 17, 45, 12, 0, time.UTC)
	dates, err := Window(start, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), dates[0].Date)
}

func TestWindowDayNames(t *testing.T) {
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	dates, err := Window(start, 6)
	require.NoError(t, err)

	wantFull := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	wantShort := []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	for i, wd := range dates {
		assert.Equal(t, wantFull[i], wd.DayFull)
		assert.Equal(t, wantShort[i], wd.DayShort)
	}
}

func TestMatchesDay(t *testing.T) {
	cases := []struct {
		name string
		day  string
		want bool
	}{
		{"full lower", "monday", true},
		{"full mixed case", "Monday", true},
		{"short", "Mon", true},
		{"short lower", "mon", true},
		{"padded", "  monday  ", true},
		{"garbled two letters", "Mo", false},
		{"other day", "tuesday", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesDay(tc.day, "monday", "mon"))
		})
	}
}
