package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkStealing_IdleCoreStealsFromLongestQueueTail(t *testing.T) {
	p := &WorkStealingPolicy{}
	cores := newCores(1, 1, 1)

	// core 0: busy with one queued; core 1: busy with two queued; core 2: idle
	assert.NoError(t, cores[0].Assign(mustTask(t, 1, 0, 9), 0))
	cores[0].Enqueue(mustTask(t, 2, 0, 3))
	assert.NoError(t, cores[1].Assign(mustTask(t, 3, 0, 9), 0))
	cores[1].Enqueue(mustTask(t, 4, 0, 3))
	cores[1].Enqueue(mustTask(t, 5, 0, 3))

	migs := p.OnRebalance(cores, 0)
	if assert.Len(t, migs, 1) {
		// longest queue is core 1; the tail task (5) is stolen
		assert.Equal(t, Migration{TaskID: 5, From: 1, To: 2}, migs[0])
	}
}

func TestWorkStealing_TieBreaksToLowestDonorID(t *testing.T) {
	p := &WorkStealingPolicy{}
	cores := newCores(1, 1, 1)
	assert.NoError(t, cores[1].Assign(mustTask(t, 1, 0, 9), 0))
	cores[1].Enqueue(mustTask(t, 2, 0, 3))
	assert.NoError(t, cores[2].Assign(mustTask(t, 3, 0, 9), 0))
	cores[2].Enqueue(mustTask(t, 4, 0, 3))

	migs := p.OnRebalance(cores, 0)
	if assert.Len(t, migs, 1) {
		assert.Equal(t, 1, migs[0].From, "equal queue lengths must steal from the lowest core id")
		assert.Equal(t, 0, migs[0].To)
	}
}

func TestWorkStealing_DoesNotStripSoleTaskFromIdleDonor(t *testing.T) {
	p := &WorkStealingPolicy{}
	cores := newCores(1, 1)
	// donor is idle with a single queued task: it runs it next step itself
	cores[0].Enqueue(mustTask(t, 1, 0, 5))

	assert.Nil(t, p.OnRebalance(cores, 0))
}

func TestWorkStealing_TwoThievesDoNotStealTheSameTask(t *testing.T) {
	p := &WorkStealingPolicy{}
	cores := newCores(1, 1, 1)
	assert.NoError(t, cores[0].Assign(mustTask(t, 1, 0, 9), 0))
	cores[0].Enqueue(mustTask(t, 2, 0, 3))
	cores[0].Enqueue(mustTask(t, 3, 0, 3))

	migs := p.OnRebalance(cores, 0)
	if assert.Len(t, migs, 2) {
		assert.Equal(t, Migration{TaskID: 3, From: 0, To: 1}, migs[0])
		assert.Equal(t, Migration{TaskID: 2, From: 0, To: 2}, migs[1])
	}
}

func TestWorkStealing_ArrivalGoesToLeastLoadedCore(t *testing.T) {
	p := &WorkStealingPolicy{}
	cores := newCores(1, 1)
	cores[0].Enqueue(mustTask(t, 1, 0, 7))
	assert.Equal(t, 1, p.OnArrival(&Task{ID: 2}, cores))
}
