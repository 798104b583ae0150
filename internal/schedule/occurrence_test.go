package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/faculty-timetable-api/internal/models"
)

var monday = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

func tpl(day, slot, facultyID, email, room string) models.LectureTemplate {
	return models.LectureTemplate{
		DayOfWeek:    day,
		TimeSlot:     slot,
		FacultyID:    facultyID,
		FacultyEmail: email,
		FacultyName:  "Dr. " + facultyID,
		Subject:      "Subject " + facultyID,
		Room:         room,
	}
}

func TestExpandCountMatchesDayPairs(t *testing.T) {
	templates := []models.LectureTemplate{
		tpl("Monday", "09:00", "F1", "a@x.edu", "R1"),
		tpl("Wednesday", "10:00", "F2", "b@x.edu", "R2"),
	}
	// A 7-date window starting on a Monday holds one Monday and one Wednesday.
	window, err := Window(monday, 6)
	require.NoError(t, err)

	occurrences := Expand(templates, window)
	require.Len(t, occurrences, 2)
	// Raw expansion order carries no contract; compare the dates as a set.
	dates := []string{occurrences[0].Date, occurrences[1].Date}
	assert.ElementsMatch(t, []string{"2026-02-02", "2026-02-04"}, dates)
}

func TestExpandCopiesTemplateFields(t *testing.T) {
	templates := []models.LectureTemplate{tpl("monday", "09:00", "F1", "a@x.edu", "R1")}
	window, err := Window(monday, 0)
	require.NoError(t, err)

	occurrences := Expand(templates, window)
	require.Len(t, occurrences, 1)
	occ := occurrences[0]
	assert.Equal(t, "2026-02-02", occ.Date)
	assert.Equal(t, "09:00", occ.Time)
	assert.Equal(t, "F1", occ.FacultyID)
	assert.Equal(t, "a@x.edu", occ.FacultyEmail)
	assert.Equal(t, "Dr. F1", occ.FacultyName)
	assert.Equal(t, "Subject F1", occ.Subject)
	assert.Equal(t, "R1", occ.Room)
}

func TestExpandDoesNotDeduplicate(t *testing.T) {
	duplicate := tpl("Monday", "09:00", "F1", "a@x.edu", "R1")
	window, err := Window(monday, 0)
	require.NoError(t, err)

	occurrences := Expand([]models.LectureTemplate{duplicate, duplicate}, window)
	assert.Len(t, occurrences, 2)
}

func TestExpandSkipsGarbledDays(t *testing.T) {
	templates := []models.LectureTemplate{
		tpl("Mo", "09:00", "F1", "a@x.edu", "R1"),
		tpl("", "10:00", "F2", "b@x.edu", "R2"),
	}
	window, err := Window(monday, 13)
	require.NoError(t, err)

	assert.Empty(t, Expand(templates, window))
}

func TestExpandAbbreviatedAndFullDaysMatchSameDates(t *testing.T) {
	window, err := Window(monday, 13)
	require.NoError(t, err)

	full := Expand([]models.LectureTemplate{tpl("monday", "09:00", "F1", "a@x.edu", "R1")}, window)
	abbr := Expand([]models.LectureTemplate{tpl("Mon", "09:00", "F1", "a@x.edu", "R1")}, window)

	require.Len(t, full, 2) // both Mondays in a 14-date window
	require.Len(t, abbr, 2)
	for i := range full {
		assert.Equal(t, full[i].Date, abbr[i].Date)
	}
}

func TestSortOccurrencesByDateThenTime(t *testing.T) {
	list := []Occurrence{
		{Date: "2026-02-03", Time: "08:00"},
		{Date: "2026-02-02", Time: "11:00"},
		{Date: "2026-02-02", Time: "09:00"},
		{Date: "2026-02-02", Time: ""},
	}
	SortOccurrences(list)

	assert.Equal(t, "", list[0].Time)
	assert.Equal(t, "09:00", list[1].Time)
	assert.Equal(t, "11:00", list[2].Time)
	assert.Equal(t, "2026-02-03", list[3].Date)

	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		assert.True(t, prev.Date < cur.Date || (prev.Date == cur.Date && prev.Time <= cur.Time))
	}
}

func TestExpandAndSortIsOrderedForAnyTemplateOrder(t *testing.T) {
	templates := []models.LectureTemplate{
		tpl("Tuesday", "14:00", "F3", "c@x.edu", "R3"),
		tpl("Monday", "11:00", "F2", "b@x.edu", "R2"),
		tpl("Monday", "09:00", "F1", "a@x.edu", "R1"),
	}
	occurrences, err := ExpandAndSort(templates, monday, 6)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	assert.Equal(t, "09:00", occurrences[0].Time)
	assert.Equal(t, "11:00", occurrences[1].Time)
	assert.Equal(t, "2026-02-03", occurrences[2].Date)
}

func TestExpandAndSortRejectsNegativeWindow(t *testing.T) {
	_, err := ExpandAndSort(nil, monday, -3)
	assert.Error(t, err)
}

func TestFilterByFacultyCaseInsensitive(t *testing.T) {
	list := []Occurrence{
		{Date: "2026-02-02", FacultyEmail: "A@X.edu"},
		{Date: "2026-02-02", FacultyEmail: "b@x.edu"},
		{Date: "2026-02-03", FacultyEmail: "a@x.edu"},
		{Date: "2026-02-03", FacultyEmail: ""},
	}

	filtered := FilterByFaculty(list, "a@x.edu")
	require.Len(t, filtered, 2)
	for _, occ := range filtered {
		assert.True(t, occ.FacultyEmail == "A@X.edu" || occ.FacultyEmail == "a@x.edu")
	}

	// idempotent
	again := FilterByFaculty(filtered, "a@x.edu")
	assert.Equal(t, filtered, again)

	// input untouched
	assert.Len(t, list, 4)
}

func TestFilterByFacultyEmptyEmailNeverMatches(t *testing.T) {
	list := []Occurrence{{Date: "2026-02-02", FacultyEmail: ""}}
	assert.Empty(t, FilterByFaculty(list, "a@x.edu"))
}

func TestOccurrencesForFaculty(t *testing.T) {
	templates := []models.LectureTemplate{
		tpl("Monday", "09:00", "F1", "a@x.edu", "R1"),
		tpl("Monday", "10:00", "F2", "b@x.edu", "R2"),
	}
	occurrences, err := OccurrencesForFaculty(templates, monday, 6, "A@X.EDU")
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "a@x.edu", occurrences[0].FacultyEmail)
}
