package sim

import "sort"

// PriorityPolicy keeps each core's queue ordered by priority (descending),
// then by arrival time (ascending), then by id (ascending) for determinism.
// Arrivals go to the core with the fewest resident tasks, ties broken by
// lowest core id.
//
// Preemption is a policy parameter, not a fixed behavior: when Preemptive
// is set, a queued task with strictly higher priority displaces a running
// lower-priority task at the next step; otherwise priority only affects
// which queued task is assigned next.
type PriorityPolicy struct {
	Preemptive bool
}

func (p *PriorityPolicy) Name() string { return PolicyPriority }

func (p *PriorityPolicy) OnArrival(_ *Task, cores []*Core) int {
	best := 0
	fewest := cores[0].ResidentTasks()
	for _, c := range cores[1:] {
		if n := c.ResidentTasks(); n < fewest {
			best, fewest = c.ID, n
		}
	}
	return best
}

func (p *PriorityPolicy) OnRebalance(_ []*Core, _ int64) []Migration {
	return nil
}

// OrderQueue sorts by priority descending, arrival ascending, id ascending.
// sort.SliceStable keeps equal keys deterministic.
func (p *PriorityPolicy) OrderQueue(tasks []*Task, _ int64) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}
		if tasks[i].ArrivalTime != tasks[j].ArrivalTime {
			return tasks[i].ArrivalTime < tasks[j].ArrivalTime
		}
		return tasks[i].ID < tasks[j].ID
	})
}

// ShouldPreempt displaces a running task only for a strictly higher
// priority, so equal-priority tasks never ping-pong.
func (p *PriorityPolicy) ShouldPreempt(running, queued *Task) bool {
	return p.Preemptive && queued.Priority > running.Priority
}
