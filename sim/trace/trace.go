package trace

// Trace collects scheduling decision records during a simulation run.
type Trace struct {
	Placements  []PlacementRecord
	Migrations  []MigrationRecord
	Preemptions []PreemptionRecord
}

// New creates a Trace ready for recording.
func New() *Trace {
	return &Trace{
		Placements:  make([]PlacementRecord, 0),
		Migrations:  make([]MigrationRecord, 0),
		Preemptions: make([]PreemptionRecord, 0),
	}
}

// RecordPlacement appends an initial placement record.
func (t *Trace) RecordPlacement(record PlacementRecord) {
	t.Placements = append(t.Placements, record)
}

// RecordMigration appends a migration record.
func (t *Trace) RecordMigration(record MigrationRecord) {
	t.Migrations = append(t.Migrations, record)
}

// RecordPreemption appends a preemption record.
func (t *Trace) RecordPreemption(record PreemptionRecord) {
	t.Preemptions = append(t.Preemptions, record)
}
