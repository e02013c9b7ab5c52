// Implements the Core model: a simulated processing unit with a performance
// class, a local task queue, and busy/idle accounting. Queues are FIFO on
// enqueue order; priority-aware policies reorder them through Reorder.

package sim

import (
	"fmt"
	"strings"
)

// Core is a simulated processing unit. Cores are created once at simulation
// start and persist for the simulation's lifetime. Cores never reference
// each other; migrations between queues are mediated by the Engine.
type Core struct {
	ID int
	// Class is the core's performance class: work units consumed per step.
	// Homogeneous configurations use 1 everywhere; heterogeneous mixes
	// assign faster cores a larger class.
	Class int64

	queue    []*Task // local queue, FIFO unless the active policy reorders
	current  *Task   // at most one running task per core per step
	busyTime int64
	idleTime int64
}

// NewCore creates a core with the given id and performance class.
func NewCore(id int, class int64) *Core {
	if class <= 0 {
		class = 1
	}
	return &Core{ID: id, Class: class}
}

// Current returns the task the core is executing, or nil when idle.
func (c *Core) Current() *Task {
	return c.current
}

// Assign sets the core's current task. Fails with CoreBusyError if a task
// is already running; the engine treats that as a fatal policy bug.
func (c *Core) Assign(t *Task, clock int64) error {
	if c.current != nil {
		return &CoreBusyError{CoreID: c.ID, TaskID: t.ID, Running: c.current.ID, Clock: clock}
	}
	c.current = t
	t.State = StateRunning
	t.AssignedCore = c.ID
	return nil
}

// Release clears the current task slot without completing the task.
// Used by preemption; the caller re-enqueues the released task.
func (c *Core) Release() *Task {
	t := c.current
	c.current = nil
	return t
}

// Tick advances the current task by the core's class worth of work units and
// updates exactly one accumulator, preserving busyTime+idleTime == clock.
// Returns the completed task, or nil if nothing finished this step.
func (c *Core) Tick(clock int64) (*Task, error) {
	if c.current == nil {
		c.idleTime++
		return nil, nil
	}
	c.busyTime++
	done, err := c.current.Consume(c.Class, clock)
	if err != nil {
		return nil, err
	}
	if done {
		t := c.current
		c.current = nil
		return t, nil
	}
	return nil, nil
}

// Enqueue adds a task to the back of the local queue.
func (c *Core) Enqueue(t *Task) {
	t.AssignedCore = c.ID
	c.queue = append(c.queue, t)
}

// Dequeue removes and returns the task at the front of the local queue.
// Returns nil if the queue is empty.
func (c *Core) Dequeue() *Task {
	if len(c.queue) == 0 {
		return nil
	}
	t := c.queue[0]
	c.queue = c.queue[1:]
	return t
}

// Peek returns the task at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (c *Core) Peek() *Task {
	if len(c.queue) == 0 {
		return nil
	}
	return c.queue[0]
}

// RemoveTail removes and returns the task at the back of the local queue.
// Work stealing takes from the tail so the donor keeps its oldest work.
func (c *Core) RemoveTail() *Task {
	if len(c.queue) == 0 {
		return nil
	}
	n := len(c.queue) - 1
	t := c.queue[n]
	c.queue = c.queue[:n]
	return t
}

// Remove deletes the task with the given id from the local queue and
// returns it, or nil if the task is not queued here.
func (c *Core) Remove(taskID int) *Task {
	for i, t := range c.queue {
		if t.ID == taskID {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return t
		}
	}
	return nil
}

// QueueLen returns the number of queued tasks (excluding the running one).
func (c *Core) QueueLen() int {
	return len(c.queue)
}

// Queued returns the queue contents for iteration. The returned slice is
// the queue's internal storage -- callers may iterate over it but MUST NOT
// append to or reslice it. For reordering, use Reorder() instead.
func (c *Core) Queued() []*Task {
	return c.queue
}

// Reorder applies fn to the queue contents, allowing in-place reordering.
// Priority-aware policies are the primary consumer. fn receives the
// underlying slice and may sort it in-place; it MUST NOT change the slice
// length (no append/delete).
func (c *Core) Reorder(fn func([]*Task)) {
	if fn == nil {
		panic("Reorder: fn must not be nil")
	}
	n := len(c.queue)
	fn(c.queue)
	if len(c.queue) != n {
		panic(fmt.Sprintf("Reorder: fn changed queue length from %d to %d", n, len(c.queue)))
	}
}

// QueuedWork returns the summed remaining work of queued tasks, plus the
// remaining work of the running task. This is the core's estimated
// remaining load, used by load-aware policies.
func (c *Core) QueuedWork() int64 {
	var load int64
	for _, t := range c.queue {
		load += t.RemainingWork
	}
	if c.current != nil {
		load += c.current.RemainingWork
	}
	return load
}

// ResidentTasks returns the number of tasks on this core (queued + running).
func (c *Core) ResidentTasks() int {
	n := len(c.queue)
	if c.current != nil {
		n++
	}
	return n
}

// Idle reports whether the core has no running task and an empty queue.
func (c *Core) Idle() bool {
	return c.current == nil && len(c.queue) == 0
}

// BusyTime returns the accumulated steps spent executing a task.
func (c *Core) BusyTime() int64 {
	return c.busyTime
}

// IdleTime returns the accumulated steps spent with no task.
func (c *Core) IdleTime() int64 {
	return c.idleTime
}

// Utilization returns busyTime / (busyTime + idleTime) over the core's
// lifetime, or 0 when no time has elapsed.
func (c *Core) Utilization() float64 {
	elapsed := c.busyTime + c.idleTime
	if elapsed == 0 {
		return 0
	}
	return float64(c.busyTime) / float64(elapsed)
}

func (c *Core) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Core %d (class %d): ", c.ID, c.Class)
	if c.current != nil {
		fmt.Fprintf(&sb, "running task %d, ", c.current.ID)
	} else {
		sb.WriteString("idle, ")
	}
	fmt.Fprintf(&sb, "%d queued, busy %d, idle %d", len(c.queue), c.busyTime, c.idleTime)
	return sb.String()
}
