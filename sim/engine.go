// Implements the simulation Engine: the single writer of the clock, the
// owner of the task registry and core array, and the driver of the fixed
// per-step order (arrivals -> rebalance -> assignment -> tick -> harvest).
// Replaying the same workload, policy, and core configuration yields
// bit-identical MetricsRecord sequences.

package sim

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/coresched/coresched/sim/trace"
)

// arrivalQueue implements heap.Interface and orders pending tasks by
// arrival time, ties broken by task id for determinism.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type arrivalQueue []*Task

func (aq arrivalQueue) Len() int { return len(aq) }
func (aq arrivalQueue) Less(i, j int) bool {
	if aq[i].ArrivalTime != aq[j].ArrivalTime {
		return aq[i].ArrivalTime < aq[j].ArrivalTime
	}
	return aq[i].ID < aq[j].ID
}
func (aq arrivalQueue) Swap(i, j int) { aq[i], aq[j] = aq[j], aq[i] }

func (aq *arrivalQueue) Push(x any) {
	*aq = append(*aq, x.(*Task))
}

func (aq *arrivalQueue) Pop() any {
	old := *aq
	n := len(old)
	item := old[n-1]
	*aq = old[0 : n-1]
	return item
}

// EngineState is the engine's lifecycle state.
type EngineState string

const (
	EngineConfigured EngineState = "configured"
	EngineRunning    EngineState = "running"
	EngineCompleted  EngineState = "completed"
)

// Engine drives the simulation one discrete step at a time. It is logically
// single-threaded: all policy decisions and core ticks happen in a fixed,
// documented order within a step. Multiple independent engines may run side
// by side (policy sweeps) without interference; there is no process-wide
// state.
type Engine struct {
	clock int64
	state EngineState

	cores  []*Core
	policy Policy
	// rebalanceInterval is the step period between OnRebalance calls;
	// 0 or 1 means every step.
	rebalanceInterval int

	pending arrivalQueue    // tasks not yet released, ordered by (arrival, id)
	tasks   map[int]*Task   // registry of tasks not yet completed
	records []MetricsRecord // completed-task stream, in completion order
	trace   *trace.Trace    // optional decision trace (nil = disabled)
}

// NewEngine creates an engine over cores with the given performance classes
// (one entry per core, in core-id order) and the given policy.
func NewEngine(coreClasses []int64, policy Policy, rebalanceInterval int) *Engine {
	cores := make([]*Core, len(coreClasses))
	for i, class := range coreClasses {
		cores[i] = NewCore(i, class)
	}
	return &Engine{
		state:             EngineConfigured,
		cores:             cores,
		policy:            policy,
		rebalanceInterval: rebalanceInterval,
		tasks:             make(map[int]*Task),
	}
}

// SetTrace attaches a decision trace collector. Pass nil to disable.
func (e *Engine) SetTrace(t *trace.Trace) {
	e.trace = t
}

// AddTask registers a task for release at its arrival time.
// Duplicate ids fail with InvalidTaskError.
func (e *Engine) AddTask(t *Task) error {
	if _, exists := e.tasks[t.ID]; exists {
		return &InvalidTaskError{TaskID: t.ID, Reason: "duplicate task id"}
	}
	e.tasks[t.ID] = t
	heap.Push(&e.pending, t)
	return nil
}

// AddTasks registers a batch of tasks, stopping at the first invalid one.
func (e *Engine) AddTasks(tasks []*Task) error {
	for _, t := range tasks {
		if err := e.AddTask(t); err != nil {
			return err
		}
	}
	return nil
}

// configured reports a NotConfiguredError when cores or policy are missing.
func (e *Engine) configured() error {
	if len(e.cores) == 0 {
		return &NotConfiguredError{Reason: "no cores"}
	}
	if e.policy == nil {
		return &NotConfiguredError{Reason: "no scheduling policy"}
	}
	return nil
}

// Step performs exactly n steps, or fewer if the simulation completes
// first. Returns the number of steps executed. Calling Step after
// completion is a no-op. Invariant violations abort with the underlying
// error; no error is silently swallowed.
func (e *Engine) Step(n int) (int, error) {
	if err := e.configured(); err != nil {
		return 0, err
	}
	if e.state == EngineCompleted {
		return 0, nil
	}
	e.state = EngineRunning
	executed := 0
	for ; executed < n && e.state == EngineRunning; executed++ {
		if err := e.stepOnce(); err != nil {
			return executed, err
		}
	}
	return executed, nil
}

// Run executes until completion or until maxSteps is exceeded, the latter
// failing with SimulationTimeoutError. The timeout indicates a policy or
// workload bug (starvation), not a normal outcome; committed state stays
// intact for inspection.
func (e *Engine) Run(maxSteps int64) error {
	if err := e.configured(); err != nil {
		return err
	}
	if e.state == EngineCompleted {
		return nil
	}
	e.state = EngineRunning
	for steps := int64(0); e.state == EngineRunning; steps++ {
		if steps >= maxSteps {
			return &SimulationTimeoutError{Clock: e.clock, MaxSteps: maxSteps, Pending: len(e.tasks)}
		}
		if err := e.stepOnce(); err != nil {
			return err
		}
	}
	logrus.Debugf("[clock %d] simulation completed, %d tasks finished", e.clock, len(e.records))
	return nil
}

// stepOnce advances the simulation by one step in the documented order:
// (a) release arrivals, (b) rebalance, (c) queue ordering, preemption, and
// assignment, (d) tick every core, (e) harvest completions, (f) advance
// the clock. Completion stamps use the end-of-step clock.
func (e *Engine) stepOnce() error {
	logrus.Debugf("[clock %d] step begin, %d pending arrivals", e.clock, e.pending.Len())

	// (a) release tasks whose arrival time has been reached
	for e.pending.Len() > 0 && e.pending[0].ArrivalTime <= e.clock {
		t := heap.Pop(&e.pending).(*Task)
		target := e.policy.OnArrival(t, e.cores)
		if target < 0 || target >= len(e.cores) {
			return fmt.Errorf("policy %s placed task %d on nonexistent core %d at clock %d",
				e.policy.Name(), t.ID, target, e.clock)
		}
		e.cores[target].Enqueue(t)
		if e.trace != nil {
			e.trace.RecordPlacement(trace.PlacementRecord{TaskID: t.ID, Clock: e.clock, Core: target})
		}
		logrus.Debugf("[clock %d] task %d placed on core %d", e.clock, t.ID, target)
	}

	// (b) rebalance and apply migrations
	if e.rebalanceInterval <= 1 || e.clock%int64(e.rebalanceInterval) == 0 {
		for _, m := range e.policy.OnRebalance(e.cores, e.clock) {
			if err := e.applyMigration(m); err != nil {
				return err
			}
		}
	}

	// (c) policy queue ordering, preemption, and assignment of idle cores
	orderer, hasOrder := e.policy.(QueueOrderer)
	preemptor, hasPreempt := e.policy.(Preemptor)
	for _, c := range e.cores {
		if hasOrder {
			c.Reorder(func(tasks []*Task) { orderer.OrderQueue(tasks, e.clock) })
		}
		if hasPreempt {
			if running, head := c.Current(), c.Peek(); running != nil && head != nil &&
				preemptor.ShouldPreempt(running, head) {
				evicted := c.Release()
				evicted.State = StateQueued
				c.Enqueue(evicted)
				// restore policy order so the evicted task queues behind
				// its preemptor
				if hasOrder {
					c.Reorder(func(tasks []*Task) { orderer.OrderQueue(tasks, e.clock) })
				}
				if e.trace != nil {
					e.trace.RecordPreemption(trace.PreemptionRecord{
						TaskID: evicted.ID, ByTaskID: head.ID, Clock: e.clock, Core: c.ID,
					})
				}
				logrus.Debugf("[clock %d] task %d preempted by task %d on core %d",
					e.clock, evicted.ID, head.ID, c.ID)
			}
		}
		if c.Current() == nil {
			if next := c.Dequeue(); next != nil {
				if err := c.Assign(next, e.clock); err != nil {
					return err
				}
				if !next.Started {
					next.Started = true
					next.StartTime = e.clock
				}
			}
		}
	}

	// (d)+(e) tick every core and harvest completions into records
	for _, c := range e.cores {
		done, err := c.Tick(e.clock)
		if err != nil {
			return err
		}
		if done == nil {
			continue
		}
		done.CompletionTime = e.clock + 1 // observed at the end of the step
		rec := MetricsRecord{
			TaskID:         done.ID,
			CoreID:         c.ID,
			ArrivalTime:    done.ArrivalTime,
			StartTime:      done.StartTime,
			CompletionTime: done.CompletionTime,
			TotalWork:      done.TotalWork,
			Turnaround:     done.CompletionTime - done.ArrivalTime,
			Response:       done.StartTime - done.ArrivalTime,
			Migrations:     done.Migrations,
		}
		e.records = append(e.records, rec)
		delete(e.tasks, done.ID)
		if obs, ok := e.policy.(CompletionObserver); ok {
			obs.OnTaskComplete(done, c.ID, e.clock)
		}
		logrus.Infof("Finished task: ID: %d at clock: %d", done.ID, done.CompletionTime)
	}

	// (f) advance the clock
	e.clock++

	if e.pending.Len() == 0 && e.allIdle() {
		e.state = EngineCompleted
	}
	return nil
}

// applyMigration moves a queued task between core queues and increments its
// migration counter. A migration naming a task that is not queued on the
// source core is a policy bug and aborts the run.
func (e *Engine) applyMigration(m Migration) error {
	if m.From < 0 || m.From >= len(e.cores) || m.To < 0 || m.To >= len(e.cores) {
		return fmt.Errorf("policy %s migration names nonexistent core (%d -> %d) at clock %d",
			e.policy.Name(), m.From, m.To, e.clock)
	}
	t := e.cores[m.From].Remove(m.TaskID)
	if t == nil {
		return fmt.Errorf("policy %s migration: task %d not queued on core %d at clock %d",
			e.policy.Name(), m.TaskID, m.From, e.clock)
	}
	e.cores[m.To].Enqueue(t)
	t.Migrations++
	if e.trace != nil {
		e.trace.RecordMigration(trace.MigrationRecord{
			TaskID: m.TaskID, Clock: e.clock, From: m.From, To: m.To,
		})
	}
	return nil
}

func (e *Engine) allIdle() bool {
	for _, c := range e.cores {
		if !c.Idle() {
			return false
		}
	}
	return true
}

// PolicyName returns the active policy's registered name.
func (e *Engine) PolicyName() string {
	if e.policy == nil {
		return ""
	}
	return e.policy.Name()
}

// Clock returns the current simulation step counter.
func (e *Engine) Clock() int64 {
	return e.clock
}

// State returns the engine's lifecycle state.
func (e *Engine) State() EngineState {
	return e.state
}

// Records returns the completed-task record stream in completion order.
// The returned slice is the engine's history; callers must not modify it.
func (e *Engine) Records() []MetricsRecord {
	return e.records
}

// Summary computes the aggregate metrics over the recorded history.
// Pure derivation: callable at any time, including mid-run.
func (e *Engine) Summary() Summary {
	return Summarize(e.records, e.cores, e.clock)
}

// CoreSnapshot is a read-only view of one core for external inspection.
type CoreSnapshot struct {
	ID          int
	Class       int64
	RunningTask int // -1 when idle
	QueuedTasks []int
	BusyTime    int64
	IdleTime    int64
	Utilization float64
}

// CoreSnapshots returns a point-in-time view of every core. Diffing the
// busy/idle accumulators of two snapshots yields windowed utilization.
func (e *Engine) CoreSnapshots() []CoreSnapshot {
	snaps := make([]CoreSnapshot, len(e.cores))
	for i, c := range e.cores {
		s := CoreSnapshot{
			ID:          c.ID,
			Class:       c.Class,
			RunningTask: -1,
			BusyTime:    c.BusyTime(),
			IdleTime:    c.IdleTime(),
			Utilization: c.Utilization(),
		}
		if cur := c.Current(); cur != nil {
			s.RunningTask = cur.ID
		}
		for _, t := range c.Queued() {
			s.QueuedTasks = append(s.QueuedTasks, t.ID)
		}
		snaps[i] = s
	}
	return snaps
}

// TaskSnapshot is a read-only view of an uncompleted task.
type TaskSnapshot struct {
	ID            int
	State         TaskState
	RemainingWork int64
	AssignedCore  int
	Priority      int
	ArrivalTime   int64
	Migrations    int
}

// TaskSnapshots returns the tasks still owned by the engine's registry
// (pending, queued, or running), in ascending id order. Completed tasks
// live in Records.
func (e *Engine) TaskSnapshots() []TaskSnapshot {
	snaps := make([]TaskSnapshot, 0, len(e.tasks))
	for _, t := range e.tasks {
		snaps = append(snaps, TaskSnapshot{
			ID:            t.ID,
			State:         t.State,
			RemainingWork: t.RemainingWork,
			AssignedCore:  t.AssignedCore,
			Priority:      t.Priority,
			ArrivalTime:   t.ArrivalTime,
			Migrations:    t.Migrations,
		})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ID < snaps[j].ID })
	return snaps
}
