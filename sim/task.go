// Defines the Task struct that models a unit of schedulable work in the
// simulation. Tracks arrival time, work progress, and timestamps for
// turnaround/response metrics.

package sim

import "fmt"

// TaskState represents the lifecycle state of a task.
type TaskState string

const (
	StateQueued    TaskState = "queued"
	StateRunning   TaskState = "running"
	StateCompleted TaskState = "completed"
)

// NoAffinity marks a task with no core-class preference.
const NoAffinity int64 = 0

// Task models a single task's lifecycle in the simulation.
//
// The descriptor fields (ID, ArrivalTime, TotalWork, Priority, AffinityHint)
// are immutable after NewTask. The runtime fields are mutated only by the
// Engine's call sequence; policies read them but never write.
type Task struct {
	ID          int   // Unique identifier for the task
	ArrivalTime int64 // Clock step at which the task enters the system
	TotalWork   int64 // Total work units required to complete
	Priority    int   // Scheduling priority; higher = more urgent. Read by priority-aware policies.
	// AffinityHint is the preferred core performance class (work units per
	// step); NoAffinity (0) means no preference. Zero-value safe: workloads
	// without affinity columns leave it unset.
	AffinityHint int64

	State          TaskState // queued, running, completed
	RemainingWork  int64     // Work units left; monotone decreasing, 0 exactly at completion
	AssignedCore   int       // Core currently holding the task (-1 before first placement)
	Started        bool      // Tracks whether StartTime has been set
	StartTime      int64     // Clock step of first execution (response time anchor)
	CompletionTime int64     // Clock step at which the task completed (end-of-step stamp)
	Migrations     int       // Number of times the task moved between core queues
}

// NewTask validates the descriptor and returns a queued task.
// Fails with InvalidTaskError when TotalWork <= 0 or ArrivalTime < 0.
func NewTask(id int, arrivalTime, totalWork int64, priority int, affinityHint int64) (*Task, error) {
	if totalWork <= 0 {
		return nil, &InvalidTaskError{TaskID: id, Reason: fmt.Sprintf("total work must be positive, got %d", totalWork)}
	}
	if arrivalTime < 0 {
		return nil, &InvalidTaskError{TaskID: id, Reason: fmt.Sprintf("arrival time must be non-negative, got %d", arrivalTime)}
	}
	return &Task{
		ID:            id,
		ArrivalTime:   arrivalTime,
		TotalWork:     totalWork,
		Priority:      priority,
		AffinityHint:  affinityHint,
		State:         StateQueued,
		RemainingWork: totalWork,
		AssignedCore:  -1,
	}, nil
}

// Consume decrements RemainingWork by min(units, RemainingWork) and reports
// whether the task is now complete. Consuming from an already-completed
// task fails with TaskAlreadyCompleteError.
func (t *Task) Consume(units int64, clock int64) (bool, error) {
	if t.State == StateCompleted {
		return false, &TaskAlreadyCompleteError{TaskID: t.ID, Clock: clock}
	}
	if units > t.RemainingWork {
		units = t.RemainingWork
	}
	t.RemainingWork -= units
	if t.RemainingWork == 0 {
		t.State = StateCompleted
		return true, nil
	}
	return false, nil
}

// Completed reports whether the task has finished all its work.
func (t *Task) Completed() bool {
	return t.State == StateCompleted
}

// This method returns a human-readable string representation of a Task.
func (t Task) String() string {
	return fmt.Sprintf("Task: (ID: %d, State: %s, Remaining: %d/%d, ArrivalTime: %d)",
		t.ID, t.State, t.RemainingWork, t.TotalWork, t.ArrivalTime)
}
