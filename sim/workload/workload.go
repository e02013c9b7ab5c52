// Package workload loads and synthesizes task descriptor sequences for the
// simulator. It is the loader collaborator: the sim core never parses
// workload files itself.
package workload

import (
	"fmt"
	"sort"

	"github.com/coresched/coresched/sim"
)

// Descriptor is one task in an external workload definition.
type Descriptor struct {
	ID       int   `json:"id" yaml:"id"`
	Arrival  int64 `json:"arrival_time" yaml:"arrival_time"`
	Work     int64 `json:"total_work_units" yaml:"total_work_units"`
	Priority int   `json:"priority" yaml:"priority"`
	// Affinity is the preferred core performance class; 0 means none.
	Affinity int64 `json:"affinity_hint,omitempty" yaml:"affinity_hint,omitempty"`
}

// ToTasks validates each descriptor and builds the task sequence, sorted by
// (arrival, id). Fails on the first invalid descriptor with its position.
func ToTasks(descriptors []Descriptor) ([]*sim.Task, error) {
	tasks := make([]*sim.Task, 0, len(descriptors))
	for i, d := range descriptors {
		t, err := sim.NewTask(d.ID, d.Arrival, d.Work, d.Priority, d.Affinity)
		if err != nil {
			return nil, fmt.Errorf("descriptor %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].ArrivalTime != tasks[j].ArrivalTime {
			return tasks[i].ArrivalTime < tasks[j].ArrivalTime
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}
