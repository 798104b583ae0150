package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/acadhub/faculty-timetable-api/internal/models"
)

// DateLayout is the wire format for occurrence dates.
const DateLayout = "2006-01-02"

// Occurrence is one concrete dated instance derived by expanding a lecture
// template against a calendar window. Occurrences are recomputed on every
// read and never persisted.
type Occurrence struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	FacultyID    string `json:"faculty_id"`
	FacultyEmail string `json:"faculty_email"`
	FacultyName  string `json:"faculty_name"`
	Subject      string `json:"subject"`
	Room         string `json:"room"`
}

// ParsedDate returns the occurrence date as a time.Time.
func (o Occurrence) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, o.Date)
}

// Expand emits one occurrence for every (window date, template) pair whose
// weekday matches. Two identical templates produce two occurrences on the
// same date; nothing is deduplicated. The raw output order carries no
// contract; callers sort via SortOccurrences.
func Expand(templates []models.LectureTemplate, window []WindowDate) []Occurrence {
	var out []Occurrence
	for _, wd := range window {
		for _, tpl := range templates {
			if !MatchesDay(tpl.DayOfWeek, wd.DayFull, wd.DayShort) {
				continue
			}
			out = append(out, Occurrence{
				Date:         wd.Date.Format(DateLayout),
				Time:         tpl.TimeSlot,
				FacultyID:    tpl.FacultyID,
				FacultyEmail: tpl.FacultyEmail,
				FacultyName:  tpl.FacultyName,
				Subject:      tpl.Subject,
				Room:         tpl.Room,
			})
		}
	}
	return out
}

// SortOccurrences orders occurrences by (date, time) ascending. Times are
// compared as strings, so an empty time sorts before all real ones; that
// matches how missing slots have always been displayed.
func SortOccurrences(list []Occurrence) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date < list[j].Date
		}
		return list[i].Time < list[j].Time
	})
}

// FilterByFaculty narrows an occurrence list to one faculty member, matched
// by case-insensitive equality on the full email. Occurrences without an
// email never match a non-empty query. The input is not mutated.
func FilterByFaculty(list []Occurrence, facultyEmail string) []Occurrence {
	out := make([]Occurrence, 0, len(list))
	for _, occ := range list {
		if occ.FacultyEmail == "" && facultyEmail != "" {
			continue
		}
		if strings.EqualFold(occ.FacultyEmail, facultyEmail) {
			out = append(out, occ)
		}
	}
	return out
}

// ExpandAndSort is the composed entry point: window generation, expansion
// and the final (date, time) sort.
func ExpandAndSort(templates []models.LectureTemplate, start time.Time, windowDays int) ([]Occurrence, error) {
	window, err := Window(start, windowDays)
	if err != nil {
		return nil, err
	}
	occurrences := Expand(templates, window)
	SortOccurrences(occurrences)
	return occurrences, nil
}

// OccurrencesForFaculty expands templates over the window and keeps only the
// given faculty member's occurrences, sorted.
func OccurrencesForFaculty(templates []models.LectureTemplate, start time.Time, windowDays int, facultyEmail string) ([]Occurrence, error) {
	occurrences, err := ExpandAndSort(templates, start, windowDays)
	if err != nil {
		return nil, err
	}
	return FilterByFaculty(occurrences, facultyEmail), nil
}
