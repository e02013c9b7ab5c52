package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, TaskState("queued"), StateQueued)
	assert.Equal(t, TaskState("running"), StateRunning)
	assert.Equal(t, TaskState("completed"), StateCompleted)
}

func TestNewTask_RequiredFields_SetCorrectly(t *testing.T) {
	task, err := NewTask(42, 5, 10, 3, 2)
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	if task.ID != 42 {
		t.Errorf("ID = %d, want 42", task.ID)
	}
	if task.ArrivalTime != 5 {
		t.Errorf("ArrivalTime = %d, want 5", task.ArrivalTime)
	}
	if task.TotalWork != 10 || task.RemainingWork != 10 {
		t.Errorf("work = %d/%d, want 10/10", task.RemainingWork, task.TotalWork)
	}
	if task.Priority != 3 {
		t.Errorf("Priority = %d, want 3", task.Priority)
	}
	if task.AffinityHint != 2 {
		t.Errorf("AffinityHint = %d, want 2", task.AffinityHint)
	}
	if task.State != StateQueued {
		t.Errorf("State = %s, want queued", task.State)
	}
	if task.AssignedCore != -1 {
		t.Errorf("AssignedCore = %d, want -1", task.AssignedCore)
	}
}

func TestNewTask_RejectsNonPositiveWork(t *testing.T) {
	for _, work := range []int64{0, -1} {
		_, err := NewTask(1, 0, work, 0, NoAffinity)
		var invalid *InvalidTaskError
		if !errors.As(err, &invalid) {
			t.Fatalf("work=%d: err = %v, want InvalidTaskError", work, err)
		}
		if invalid.TaskID != 1 {
			t.Errorf("error names task %d, want 1", invalid.TaskID)
		}
	}
}

func TestNewTask_RejectsNegativeArrival(t *testing.T) {
	_, err := NewTask(7, -1, 5, 0, NoAffinity)
	var invalid *InvalidTaskError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, 7, invalid.TaskID)
}

func TestTask_Consume_DecrementsAndCompletes(t *testing.T) {
	task, _ := NewTask(1, 0, 3, 0, NoAffinity)

	done, err := task.Consume(2, 0)
	assert.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, int64(1), task.RemainingWork)

	// over-consumption caps at the remaining work
	done, err = task.Consume(5, 1)
	assert.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, int64(0), task.RemainingWork)
	assert.Equal(t, StateCompleted, task.State)
}

func TestTask_Consume_CompletesExactlyOnce(t *testing.T) {
	task, _ := NewTask(9, 0, 1, 0, NoAffinity)
	done, err := task.Consume(1, 4)
	assert.NoError(t, err)
	assert.True(t, done)

	_, err = task.Consume(1, 5)
	var complete *TaskAlreadyCompleteError
	if !errors.As(err, &complete) {
		t.Fatalf("err = %v, want TaskAlreadyCompleteError", err)
	}
	assert.Equal(t, 9, complete.TaskID)
	assert.Equal(t, int64(5), complete.Clock)
}

func TestTask_String_IncludesState(t *testing.T) {
	task, _ := NewTask(3, 0, 2, 0, NoAffinity)
	assert.Contains(t, task.String(), "queued")
}
