package sim

// RoundRobinPolicy assigns arrivals to cores in cyclic order and never
// rebalances. With N cores and one arrival per step, task k lands on core
// k mod N.
type RoundRobinPolicy struct {
	cursor int
}

func (p *RoundRobinPolicy) Name() string { return PolicyRoundRobin }

func (p *RoundRobinPolicy) OnArrival(_ *Task, cores []*Core) int {
	target := p.cursor % len(cores)
	p.cursor = (p.cursor + 1) % len(cores)
	return target
}

func (p *RoundRobinPolicy) OnRebalance(_ []*Core, _ int64) []Migration {
	return nil
}
