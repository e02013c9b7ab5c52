package sim

import "github.com/sirupsen/logrus"

// LeastLoadedPolicy implements dynamic load balancing. Arrivals go to the
// core with the smallest estimated remaining load (summed remaining work of
// queued plus running tasks, ties broken by lowest core id). Rebalancing
// migrates one task from the most-loaded to the least-loaded core when the
// load gap exceeds GapThreshold.
type LeastLoadedPolicy struct {
	// GapThreshold is the minimum maxLoad-minLoad gap (in work units) that
	// triggers a migration. 0 migrates on any nonzero gap.
	GapThreshold int64
}

func (p *LeastLoadedPolicy) Name() string { return PolicyLeastLoaded }

func (p *LeastLoadedPolicy) OnArrival(_ *Task, cores []*Core) int {
	return leastLoadedCore(cores)
}

func (p *LeastLoadedPolicy) OnRebalance(cores []*Core, clock int64) []Migration {
	most, least := -1, -1
	var maxLoad, minLoad int64
	for _, c := range cores {
		load := c.QueuedWork()
		if most == -1 || load > maxLoad {
			most, maxLoad = c.ID, load
		}
		if least == -1 || load < minLoad {
			least, minLoad = c.ID, load
		}
	}
	if most == least || maxLoad-minLoad <= p.GapThreshold {
		return nil
	}
	// Move the most recently queued task: the donor keeps its oldest work,
	// so tasks already near the front are not penalized with a migration.
	donor := cores[most]
	if donor.QueueLen() == 0 {
		return nil
	}
	moved := donor.Queued()[donor.QueueLen()-1]
	logrus.Debugf("[clock %d] least-loaded: migrating task %d from core %d (load %d) to core %d (load %d)",
		clock, moved.ID, most, maxLoad, least, minLoad)
	return []Migration{{TaskID: moved.ID, From: most, To: least}}
}

// leastLoadedCore returns the id of the core with the smallest estimated
// remaining load, ties broken by lowest core id.
func leastLoadedCore(cores []*Core) int {
	best := 0
	bestLoad := cores[0].QueuedWork()
	for _, c := range cores[1:] {
		if load := c.QueuedWork(); load < bestLoad {
			best, bestLoad = c.ID, load
		}
	}
	return best
}
