// Defines the error taxonomy for the simulator.
//
// Configuration errors (InvalidTaskError, UnknownPolicyError,
// NotConfiguredError) are detected at or before setup and are fatal to that
// run. State-invariant violations (TaskAlreadyCompleteError, CoreBusyError)
// indicate a policy implementation bug; the engine aborts rather than
// recovering, since a masked invariant break corrupts metrics. Divergence
// (SimulationTimeoutError) leaves partial state intact for inspection.

package sim

import "fmt"

// InvalidTaskError reports a task descriptor that failed validation.
type InvalidTaskError struct {
	TaskID int
	Reason string
}

func (e *InvalidTaskError) Error() string {
	return fmt.Sprintf("invalid task %d: %s", e.TaskID, e.Reason)
}

// TaskAlreadyCompleteError reports work consumed from a completed task.
type TaskAlreadyCompleteError struct {
	TaskID int
	Clock  int64
}

func (e *TaskAlreadyCompleteError) Error() string {
	return fmt.Sprintf("task %d already complete at clock %d", e.TaskID, e.Clock)
}

// CoreBusyError reports an assignment onto a core that is already running a task.
type CoreBusyError struct {
	CoreID  int
	TaskID  int // task whose assignment was attempted
	Running int // task currently occupying the core
	Clock   int64
}

func (e *CoreBusyError) Error() string {
	return fmt.Sprintf("core %d busy with task %d, cannot assign task %d at clock %d",
		e.CoreID, e.Running, e.TaskID, e.Clock)
}

// UnknownPolicyError reports an unregistered scheduling policy name.
// Raised at configuration time, never at runtime.
type UnknownPolicyError struct {
	Name string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown scheduling policy %q", e.Name)
}

// NotConfiguredError reports Step/Run called before cores and policy are set.
type NotConfiguredError struct {
	Reason string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("engine not configured: %s", e.Reason)
}

// SimulationTimeoutError reports a workload/policy combination that did not
// reach completion within the step bound. The engine's committed state
// remains inspectable; this is a diagnosis aid, not a retryable condition.
type SimulationTimeoutError struct {
	Clock    int64
	MaxSteps int64
	Pending  int // tasks not yet completed (queued, running, or unreleased)
}

func (e *SimulationTimeoutError) Error() string {
	return fmt.Sprintf("simulation exceeded %d steps at clock %d with %d tasks outstanding",
		e.MaxSteps, e.Clock, e.Pending)
}
