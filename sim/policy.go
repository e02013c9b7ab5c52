// Defines the scheduling policy contract and the closed set of policy
// variants. Policies decide task placement and migration; the Engine applies
// their decisions. Policy auxiliary state is owned by the policy instance
// and mutated only through the Engine's call sequence.

package sim

import "sort"

// Migration moves a queued task from one core's queue to another's.
// Applied by the Engine; the moved task's migration counter is incremented.
type Migration struct {
	TaskID int
	From   int
	To     int
}

// Policy decides task placement at arrival and migrations at rebalance
// points. Implementations sort candidate cores deterministically (ascending
// core id tie-breaks) so identical runs yield identical decisions.
type Policy interface {
	// Name returns the registered policy name.
	Name() string
	// OnArrival selects the core that receives a newly released task.
	OnArrival(t *Task, cores []*Core) int
	// OnRebalance returns the migrations to apply this step. Policies with
	// no rebalancing return nil.
	OnRebalance(cores []*Core, clock int64) []Migration
}

// QueueOrderer is implemented by policies that impose a per-core queue
// order other than FIFO. The Engine invokes it through Core.Reorder after
// arrivals and migrations, before assignment.
type QueueOrderer interface {
	OrderQueue(tasks []*Task, clock int64)
}

// Preemptor is implemented by policies that may displace a running task.
// ShouldPreempt is consulted once per core per step, comparing the queue
// head against the running task.
type Preemptor interface {
	ShouldPreempt(running, queued *Task) bool
}

// CompletionObserver is implemented by policies that track load estimates
// and need to observe completions before the next step.
type CompletionObserver interface {
	OnTaskComplete(t *Task, coreID int, clock int64)
}

// Registered policy names.
const (
	PolicyRoundRobin   = "round-robin"
	PolicyStatic       = "static"
	PolicyLeastLoaded  = "least-loaded"
	PolicyWorkStealing = "work-stealing"
	PolicyPriority     = "priority"
	PolicyHeteroAware  = "hetero-aware"
)

// ValidPolicies is the set of recognized scheduling policy names.
// Shared by PolicyConfig.Validate and NewPolicy to avoid duplication.
// Empty string defaults to round-robin (for CLI flag default compatibility).
var ValidPolicies = map[string]bool{
	"":                 true,
	PolicyRoundRobin:   true,
	PolicyStatic:       true,
	PolicyLeastLoaded:  true,
	PolicyWorkStealing: true,
	PolicyPriority:     true,
	PolicyHeteroAware:  true,
}

// PolicyNames returns the registered policy names in deterministic order.
func PolicyNames() []string {
	names := make([]string, 0, len(ValidPolicies)-1)
	for name := range ValidPolicies {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// PolicyParams holds tunable parameters shared across policy variants.
// Zero values select the documented defaults.
type PolicyParams struct {
	// RebalanceInterval is the step period between OnRebalance invocations
	// (0 or 1 = every step).
	RebalanceInterval int
	// LoadGapThreshold is the least-loaded policy's migration trigger: a
	// task moves only when maxLoad-minLoad exceeds this many work units.
	LoadGapThreshold int64
	// Preemptive enables mid-run displacement for the priority policy.
	// When false, priority only affects placement of queued tasks.
	Preemptive bool
}

// NewPolicy creates a Policy by name. Unregistered names fail with
// UnknownPolicyError at configuration time, never at runtime.
func NewPolicy(name string, params PolicyParams) (Policy, error) {
	if !ValidPolicies[name] {
		return nil, &UnknownPolicyError{Name: name}
	}
	switch name {
	case "", PolicyRoundRobin:
		return &RoundRobinPolicy{}, nil
	case PolicyStatic:
		return &StaticPolicy{}, nil
	case PolicyLeastLoaded:
		return &LeastLoadedPolicy{GapThreshold: params.LoadGapThreshold}, nil
	case PolicyWorkStealing:
		return &WorkStealingPolicy{}, nil
	case PolicyPriority:
		return &PriorityPolicy{Preemptive: params.Preemptive}, nil
	case PolicyHeteroAware:
		return &HeteroAwarePolicy{}, nil
	default:
		// unreachable: ValidPolicies gates every name above
		return nil, &UnknownPolicyError{Name: name}
	}
}
