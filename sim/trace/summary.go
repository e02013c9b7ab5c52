package trace

// Summary aggregates statistics from a Trace.
type Summary struct {
	Placements  int
	Migrations  int
	Preemptions int
	// CoreDistribution maps core id to the number of initial placements it
	// received, exposing placement skew.
	CoreDistribution map[int]int
	// MostMigratedTask is the task id with the highest migration count
	// (-1 when no migrations occurred).
	MostMigratedTask int
}

// Summarize computes aggregate statistics from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *Summary {
	summary := &Summary{
		CoreDistribution: make(map[int]int),
		MostMigratedTask: -1,
	}
	if t == nil {
		return summary
	}

	summary.Placements = len(t.Placements)
	summary.Migrations = len(t.Migrations)
	summary.Preemptions = len(t.Preemptions)

	for _, p := range t.Placements {
		summary.CoreDistribution[p.Core]++
	}

	perTask := make(map[int]int)
	most := -1
	for _, m := range t.Migrations {
		perTask[m.TaskID]++
		if most == -1 || perTask[m.TaskID] > perTask[most] ||
			(perTask[m.TaskID] == perTask[most] && m.TaskID < most) {
			most = m.TaskID
		}
	}
	summary.MostMigratedTask = most

	return summary
}
