package schedule

import "strings"

// ConflictKind classifies a detected collision.
type ConflictKind string

const (
	RoomConflict    ConflictKind = "room_conflict"
	FacultyConflict ConflictKind = "faculty_conflict"
)

// Conflict records two occurrences sharing a date and time that also collide
// on room or faculty identity. The pair is unordered; A precedes B only by
// input position.
type Conflict struct {
	Kind ConflictKind `json:"kind"`
	A    Occurrence   `json:"occurrence_a"`
	B    Occurrence   `json:"occurrence_b"`
}

// DetectConflicts scans all unordered occurrence pairs at the same date and
// time. A shared non-empty room yields a room conflict; a shared non-empty
// faculty identity yields a faculty conflict. One pair can produce both.
// Empty rooms and empty identities are data-quality gaps, not collisions,
// and never conflict.
func DetectConflicts(occurrences []Occurrence) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(occurrences); i++ {
		for j := i + 1; j < len(occurrences); j++ {
			a, b := occurrences[i], occurrences[j]
			if a.Date != b.Date || a.Time != b.Time {
				continue
			}
			if a.Room != "" && a.Room == b.Room {
				conflicts = append(conflicts, Conflict{Kind: RoomConflict, A: a, B: b})
			}
			if key := facultyKey(a); key != "" && key == facultyKey(b) {
				conflicts = append(conflicts, Conflict{Kind: FacultyConflict, A: a, B: b})
			}
		}
	}
	return conflicts
}

// facultyKey resolves the identity used for faculty collision checks: the
// opaque faculty code when present, otherwise the lower-cased email.
func facultyKey(o Occurrence) string {
	if o.FacultyID != "" {
		return o.FacultyID
	}
	return strings.ToLower(o.FacultyEmail)
}
