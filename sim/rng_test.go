package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_CachesPerSubsystem(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(42))
	first := p.ForSubsystem(SubsystemWorkload)
	second := p.ForSubsystem(SubsystemWorkload)
	assert.Same(t, first, second, "repeated lookups must return the cached stream")
	assert.Equal(t, NewSimulationKey(42), p.Key())
}

func TestPartitionedRNG_SameKeySameStream(t *testing.T) {
	a := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemWorkload)
	b := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemWorkload)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Int63(), b.Int63(), "draw %d diverged", i)
	}
}

func TestPartitionedRNG_SubsystemsAreIsolated(t *testing.T) {
	p := NewPartitionedRNG(NewSimulationKey(7))
	workload := p.ForSubsystem(SubsystemWorkload)
	other := p.ForSubsystem("jitter")

	// drawing from one subsystem must not perturb the other
	reference := NewPartitionedRNG(NewSimulationKey(7)).ForSubsystem(SubsystemWorkload)
	for i := 0; i < 10; i++ {
		other.Int63()
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, reference.Int63(), workload.Int63(), "draw %d diverged", i)
	}
}
