package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtilizationByRoomCounts(t *testing.T) {
	list := []Occurrence{
		{Room: "R1"},
		{Room: "R1"},
		{Room: "R2"},
		{Room: ""},
	}

	counts := UtilizationByRoom(list)
	assert.Equal(t, 2, counts["R1"])
	assert.Equal(t, 1, counts["R2"])
	assert.Equal(t, 1, counts[UnknownKey])
}

func TestUtilizationTotalsEqualOccurrenceCount(t *testing.T) {
	list := []Occurrence{
		{Room: "R1"}, {Room: "R2"}, {Room: "R2"}, {Room: ""}, {Room: "Lab"},
	}

	total := 0
	for _, n := range UtilizationByRoom(list) {
		total += n
	}
	assert.Equal(t, len(list), total)
}

func TestWorkloadByFaculty(t *testing.T) {
	list := []Occurrence{
		{FacultyID: "F1"},
		{FacultyID: "F1"},
		{FacultyID: "F2"},
		{FacultyID: ""},
	}

	counts := WorkloadByFaculty(list)
	assert.Equal(t, 2, counts["F1"])
	assert.Equal(t, 1, counts["F2"])
	assert.Equal(t, 1, counts[UnknownKey])
}

func TestAggregateByKeyEmptyList(t *testing.T) {
	counts := AggregateByKey(nil, func(o Occurrence) string { return o.Room })
	assert.Empty(t, counts)
}
