package sim

// HeteroAwarePolicy places tasks with regard to core performance classes.
// A task with an affinity hint prefers cores of that class; among them (or
// among all cores when no class matches, or when the task has no hint) it
// picks the core with the lowest estimated completion time:
//
//	(queued load + task work) / class
//
// i.e. queue wait plus the task's own execution time on that core. Ties
// break by lowest core id. No rebalancing: placement already accounts for
// core speed, and migrations would invalidate the completion estimates.
type HeteroAwarePolicy struct{}

func (p *HeteroAwarePolicy) Name() string { return PolicyHeteroAware }

func (p *HeteroAwarePolicy) OnArrival(t *Task, cores []*Core) int {
	candidates := cores
	if t.AffinityHint != NoAffinity {
		matched := make([]*Core, 0, len(cores))
		for _, c := range cores {
			if c.Class == t.AffinityHint {
				matched = append(matched, c)
			}
		}
		if len(matched) > 0 {
			candidates = matched
		}
	}

	best := candidates[0].ID
	bestETA := estimatedCompletion(candidates[0], t)
	for _, c := range candidates[1:] {
		if eta := estimatedCompletion(c, t); eta < bestETA {
			best, bestETA = c.ID, eta
		}
	}
	return best
}

func (p *HeteroAwarePolicy) OnRebalance(_ []*Core, _ int64) []Migration {
	return nil
}

// estimatedCompletion is the steps until the task would finish on the core,
// assuming FIFO service of the work already resident there.
func estimatedCompletion(c *Core, t *Task) float64 {
	return float64(c.QueuedWork()+t.TotalWork) / float64(c.Class)
}
