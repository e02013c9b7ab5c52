package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPolicy_UnknownName_FailsAtConfiguration(t *testing.T) {
	_, err := NewPolicy("shortest-job-first", PolicyParams{})
	var unknown *UnknownPolicyError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownPolicyError", err)
	}
	assert.Equal(t, "shortest-job-first", unknown.Name)
}

func TestNewPolicy_EmptyName_DefaultsToRoundRobin(t *testing.T) {
	p, err := NewPolicy("", PolicyParams{})
	assert.NoError(t, err)
	assert.Equal(t, PolicyRoundRobin, p.Name())
}

func TestNewPolicy_EveryRegisteredName_Constructs(t *testing.T) {
	for _, name := range PolicyNames() {
		p, err := NewPolicy(name, PolicyParams{})
		if err != nil {
			t.Fatalf("NewPolicy(%q): %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("NewPolicy(%q).Name() = %q", name, p.Name())
		}
	}
}

func TestPolicyNames_SortedAndComplete(t *testing.T) {
	names := PolicyNames()
	assert.Equal(t, []string{
		PolicyHeteroAware, PolicyLeastLoaded, PolicyPriority,
		PolicyRoundRobin, PolicyStatic, PolicyWorkStealing,
	}, names)
}

func newCores(classes ...int64) []*Core {
	cores := make([]*Core, len(classes))
	for i, class := range classes {
		cores[i] = NewCore(i, class)
	}
	return cores
}

func TestRoundRobin_CyclesThroughCores(t *testing.T) {
	p := &RoundRobinPolicy{}
	cores := newCores(1, 1, 1)
	for k := 0; k < 7; k++ {
		task := &Task{ID: k}
		if got := p.OnArrival(task, cores); got != k%3 {
			t.Errorf("task %d placed on core %d, want %d", k, got, k%3)
		}
	}
	assert.Nil(t, p.OnRebalance(cores, 0))
}

func TestStatic_PlacementIsDeterministicAndInRange(t *testing.T) {
	p := &StaticPolicy{}
	cores := newCores(1, 1, 1, 1)
	for id := 0; id < 50; id++ {
		task := &Task{ID: id}
		first := p.OnArrival(task, cores)
		second := p.OnArrival(task, cores)
		assert.Equal(t, first, second, "placement for task %d not stable", id)
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 4)
	}
	assert.Nil(t, p.OnRebalance(cores, 0))
}
