package sim

import "github.com/sirupsen/logrus"

// WorkStealingPolicy gives each core its own queue; arrivals go to the
// least-loaded core and an idle core (no running task, empty queue) steals
// from the tail of the longest peer queue, ties broken by lowest core id.
// Stolen tasks count a migration.
type WorkStealingPolicy struct{}

func (p *WorkStealingPolicy) Name() string { return PolicyWorkStealing }

func (p *WorkStealingPolicy) OnArrival(_ *Task, cores []*Core) int {
	return leastLoadedCore(cores)
}

func (p *WorkStealingPolicy) OnRebalance(cores []*Core, clock int64) []Migration {
	var migrations []Migration
	// gain[i] tracks tasks already promised to (+) or taken from (-) core i
	// this step, so successive thieves see the post-steal queue lengths.
	// Migrations are applied by the Engine after this call returns.
	gain := make([]int, len(cores))
	for _, thief := range cores {
		if !thief.Idle() || gain[thief.ID] > 0 {
			continue
		}
		donor := p.pickDonor(cores, thief.ID, gain)
		if donor == -1 {
			continue
		}
		victimQueue := cores[donor].Queued()
		stolen := victimQueue[len(victimQueue)-1+gain[donor]]
		gain[donor]--
		gain[thief.ID]++
		logrus.Debugf("[clock %d] work-stealing: core %d steals task %d from core %d",
			clock, thief.ID, stolen.ID, donor)
		migrations = append(migrations, Migration{TaskID: stolen.ID, From: donor, To: thief.ID})
	}
	return migrations
}

// pickDonor returns the core with the longest effective queue, ties broken
// by lowest core id. A donor must be able to spare a task: it is either
// busy with at least one queued task, or has two or more queued, so work is
// never bounced off a core that would run it on the next assignment.
func (p *WorkStealingPolicy) pickDonor(cores []*Core, thiefID int, gain []int) int {
	donor, longest := -1, 0
	for _, c := range cores {
		if c.ID == thiefID {
			continue
		}
		qlen := c.QueueLen() + gain[c.ID]
		if qlen <= 0 {
			continue
		}
		spare := c.Current() != nil || qlen >= 2
		if !spare {
			continue
		}
		if qlen > longest {
			donor, longest = c.ID, qlen
		}
	}
	return donor
}
