package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/faculty-timetable-api/internal/models"
)

func occ(date, slot, facultyID, email, room string) Occurrence {
	return Occurrence{Date: date, Time: slot, FacultyID: facultyID, FacultyEmail: email, Room: room}
}

func kinds(conflicts []Conflict) map[ConflictKind]int {
	out := make(map[ConflictKind]int)
	for _, c := range conflicts {
		out[c.Kind]++
	}
	return out
}

func TestDetectConflictsRoomCollision(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R1"),
		occ("2026-02-02", "09:00", "F2", "b@x.edu", "R1"),
	})

	require.Len(t, conflicts, 1)
	assert.Equal(t, RoomConflict, conflicts[0].Kind)
}

func TestDetectConflictsFacultyCollision(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R1"),
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R2"),
	})

	require.Len(t, conflicts, 1)
	assert.Equal(t, FacultyConflict, conflicts[0].Kind)
}

func TestDetectConflictsDoubleCollision(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R1"),
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R1"),
	})

	counts := kinds(conflicts)
	assert.Equal(t, 1, counts[RoomConflict])
	assert.Equal(t, 1, counts[FacultyConflict])
	assert.Len(t, conflicts, 2)
}

func TestDetectConflictsDifferentTimeOrDateNeverConflict(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R1"),
		occ("2026-02-02", "10:00", "F1", "a@x.edu", "R1"),
		occ("2026-02-03", "09:00", "F1", "a@x.edu", "R1"),
	})
	assert.Empty(t, conflicts)
}

func TestDetectConflictsEmptyRoomNeverConflicts(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "F1", "a@x.edu", ""),
		occ("2026-02-02", "09:00", "F2", "b@x.edu", ""),
	})
	assert.Empty(t, conflicts)
}

func TestDetectConflictsEmptyIdentityNeverConflicts(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "", "", "R1"),
		occ("2026-02-02", "09:00", "", "", "R2"),
	})
	assert.Empty(t, conflicts)
}

func TestDetectConflictsFallsBackToEmailIdentity(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "", "A@X.edu", "R1"),
		occ("2026-02-02", "09:00", "", "a@x.edu", "R2"),
	})

	require.Len(t, conflicts, 1)
	assert.Equal(t, FacultyConflict, conflicts[0].Kind)
}

func TestDetectConflictsThreeWayRoomCollision(t *testing.T) {
	conflicts := DetectConflicts([]Occurrence{
		occ("2026-02-02", "09:00", "F1", "a@x.edu", "R1"),
		occ("2026-02-02", "09:00", "F2", "b@x.edu", "R1"),
		occ("2026-02-02", "09:00", "F3", "c@x.edu", "R1"),
	})

	// every unordered pair collides on the room
	assert.Equal(t, 3, kinds(conflicts)[RoomConflict])
}

func TestEndToEndExpansionAndConflicts(t *testing.T) {
	templates := []models.LectureTemplate{
		{DayOfWeek: "Monday", TimeSlot: "09:00", FacultyEmail: "a@x.edu", Room: "R1"},
		{DayOfWeek: "Monday", TimeSlot: "09:00", FacultyEmail: "b@x.edu", Room: "R1"},
	}
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC) // a Monday

	occurrences, err := ExpandAndSort(templates, start, 6)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	for _, o := range occurrences {
		assert.Equal(t, "2026-02-02", o.Date)
		assert.Equal(t, "09:00", o.Time)
	}

	conflicts := DetectConflicts(occurrences)
	counts := kinds(conflicts)
	assert.Equal(t, 1, counts[RoomConflict])
	assert.Equal(t, 0, counts[FacultyConflict])
}
