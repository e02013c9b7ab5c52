package sim

import (
	"hash/fnv"
	"strconv"
)

// StaticPolicy fixes each task's core by a hash of its id modulo the core
// count at arrival. No rebalancing ever: migrations_count stays 0 for every
// task under any workload.
type StaticPolicy struct{}

func (p *StaticPolicy) Name() string { return PolicyStatic }

func (p *StaticPolicy) OnArrival(t *Task, cores []*Core) int {
	return int(fnv1a64(strconv.Itoa(t.ID)) % uint64(len(cores)))
}

func (p *StaticPolicy) OnRebalance(_ []*Core, _ int64) []Migration {
	return nil
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
