package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustTask(t *testing.T, id int, arrival, work int64) *Task {
	t.Helper()
	task, err := NewTask(id, arrival, work, 0, NoAffinity)
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	return task
}

func TestCore_Assign_RejectsSecondTask(t *testing.T) {
	c := NewCore(0, 1)
	t1 := mustTask(t, 1, 0, 5)
	t2 := mustTask(t, 2, 0, 5)

	assert.NoError(t, c.Assign(t1, 0))
	assert.Equal(t, StateRunning, t1.State)

	err := c.Assign(t2, 3)
	var busy *CoreBusyError
	if !errors.As(err, &busy) {
		t.Fatalf("err = %v, want CoreBusyError", err)
	}
	assert.Equal(t, 0, busy.CoreID)
	assert.Equal(t, 2, busy.TaskID)
	assert.Equal(t, 1, busy.Running)
	assert.Equal(t, int64(3), busy.Clock)
}

func TestCore_Tick_UpdatesExactlyOneAccumulator(t *testing.T) {
	c := NewCore(0, 1)

	// idle tick
	done, err := c.Tick(0)
	assert.NoError(t, err)
	assert.Nil(t, done)
	assert.Equal(t, int64(0), c.BusyTime())
	assert.Equal(t, int64(1), c.IdleTime())

	// busy ticks until completion
	task := mustTask(t, 1, 0, 2)
	assert.NoError(t, c.Assign(task, 1))
	done, err = c.Tick(1)
	assert.NoError(t, err)
	assert.Nil(t, done)
	done, err = c.Tick(2)
	assert.NoError(t, err)
	assert.Same(t, task, done)
	assert.Nil(t, c.Current())

	// invariant: busy + idle == elapsed ticks
	assert.Equal(t, int64(3), c.BusyTime()+c.IdleTime())
}

func TestCore_Tick_FastCoreDoesProportionallyMoreWork(t *testing.T) {
	c := NewCore(1, 3)
	task := mustTask(t, 1, 0, 5)
	assert.NoError(t, c.Assign(task, 0))

	done, _ := c.Tick(0)
	assert.Nil(t, done)
	assert.Equal(t, int64(2), task.RemainingWork)

	done, _ = c.Tick(1)
	assert.Same(t, task, done)
	assert.Equal(t, int64(0), task.RemainingWork)
}

func TestCore_Queue_FIFOOrder(t *testing.T) {
	c := NewCore(0, 1)
	t1 := mustTask(t, 1, 0, 1)
	t2 := mustTask(t, 2, 0, 1)
	t3 := mustTask(t, 3, 0, 1)
	c.Enqueue(t1)
	c.Enqueue(t2)
	c.Enqueue(t3)

	assert.Equal(t, 3, c.QueueLen())
	assert.Same(t, t1, c.Peek())
	assert.Same(t, t1, c.Dequeue())
	assert.Same(t, t3, c.RemoveTail())
	assert.Same(t, t2, c.Dequeue())
	assert.Nil(t, c.Dequeue())
}

func TestCore_Remove_ByID(t *testing.T) {
	c := NewCore(0, 1)
	t1 := mustTask(t, 1, 0, 1)
	t2 := mustTask(t, 2, 0, 1)
	c.Enqueue(t1)
	c.Enqueue(t2)

	assert.Same(t, t2, c.Remove(2))
	assert.Nil(t, c.Remove(99))
	assert.Equal(t, 1, c.QueueLen())
}

func TestCore_Reorder_PanicsOnLengthChange(t *testing.T) {
	c := NewCore(0, 1)
	c.Enqueue(mustTask(t, 1, 0, 1))

	assert.Panics(t, func() { c.Reorder(nil) })
	assert.Panics(t, func() {
		c.Reorder(func(_ []*Task) {
			// simulate a buggy policy dropping a task behind Reorder's back
			c.queue = c.queue[:0]
		})
	})
}

func TestCore_QueuedWork_IncludesRunningTask(t *testing.T) {
	c := NewCore(0, 1)
	running := mustTask(t, 1, 0, 4)
	assert.NoError(t, c.Assign(running, 0))
	c.Enqueue(mustTask(t, 2, 0, 3))
	c.Enqueue(mustTask(t, 3, 0, 2))

	assert.Equal(t, int64(9), c.QueuedWork())
	assert.Equal(t, 3, c.ResidentTasks())
	assert.False(t, c.Idle())
}

func TestCore_Utilization_ZeroWhenNoTimeElapsed(t *testing.T) {
	c := NewCore(0, 1)
	assert.Equal(t, 0.0, c.Utilization())

	task := mustTask(t, 1, 0, 1)
	assert.NoError(t, c.Assign(task, 0))
	c.Tick(0)
	c.Tick(1) // idle
	assert.Equal(t, 0.5, c.Utilization())
}
