package schedule

// UnknownKey groups occurrences whose aggregation key is missing.
const UnknownKey = "Unknown"

// AggregateByKey counts occurrences grouped by the caller-selected key.
// Empty keys are grouped under UnknownKey. Percentages and ratios are a
// presentation concern left to the caller.
func AggregateByKey(occurrences []Occurrence, keyFn func(Occurrence) string) map[string]int {
	counts := make(map[string]int, len(occurrences))
	for _, occ := range occurrences {
		key := keyFn(occ)
		if key == "" {
			key = UnknownKey
		}
		counts[key]++
	}
	return counts
}

// UtilizationByRoom counts occurrences per room.
func UtilizationByRoom(occurrences []Occurrence) map[string]int {
	return AggregateByKey(occurrences, func(o Occurrence) string { return o.Room })
}

// WorkloadByFaculty counts occurrences per faculty code.
func WorkloadByFaculty(occurrences []Occurrence) map[string]int {
	return AggregateByKey(occurrences, func(o Occurrence) string { return o.FacultyID })
}
