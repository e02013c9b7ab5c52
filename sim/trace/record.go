// Package trace provides decision-trace recording for scheduling policy
// analysis. This package has no dependencies on sim/ — it stores pure data
// types.
package trace

// PlacementRecord captures a single initial placement decision.
type PlacementRecord struct {
	TaskID int
	Clock  int64
	Core   int
}

// MigrationRecord captures a task moved between core queues, whether by
// load-balancing rebalance or by a work steal.
type MigrationRecord struct {
	TaskID int
	Clock  int64
	From   int
	To     int
}

// PreemptionRecord captures a running task displaced by a higher-priority
// queued task on the same core.
type PreemptionRecord struct {
	TaskID   int // displaced task
	ByTaskID int // task that takes the core
	Clock    int64
	Core     int
}
