package domain

// StatsSnapshot is a derived, non-persisted view of a scope.
//
// ByStatus and ByKind always contain an entry for every enum value,
// zero-filled for empty groups. Each grouping comes from a single statement,
// so it is internally consistent, and Total equals the sum of ByStatus by
// construction. The groupings are separate statement snapshots though: under
// concurrent writes the sum of ByKind may briefly disagree with Total.
type StatsSnapshot struct {
	Total        int
	ByStatus     map[ResourceStatus]int
	ByKind       map[ResourceKind]int
	StreamsTotal int64
	Top          []Resource
}

// EmptyStatsSnapshot returns a snapshot with all groups present and zero.
func EmptyStatsSnapshot() StatsSnapshot {
	byStatus := make(map[ResourceStatus]int, len(ResourceStatuses()))
	for _, s := range ResourceStatuses() {
		byStatus[s] = 0
	}
	byKind := make(map[ResourceKind]int, len(ResourceKinds()))
	for _, k := range ResourceKinds() {
		byKind[k] = 0
	}
	return StatsSnapshot{ByStatus: byStatus, ByKind: byKind}
}
