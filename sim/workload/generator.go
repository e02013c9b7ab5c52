package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/coresched/coresched/sim"
)

// GeneratorSpec describes a synthetic workload: Poisson arrivals with
// Gaussian work and uniform priority distributions. Deterministic given the
// same spec and seed.
type GeneratorSpec struct {
	Seed       int64   `yaml:"seed"`
	NumTasks   int     `yaml:"num_tasks"`
	Rate       float64 `yaml:"rate"` // mean arrivals per step
	WorkMean   float64 `yaml:"work_mean"`
	WorkStdDev float64 `yaml:"work_stddev"`
	WorkMin    int64   `yaml:"work_min"`
	WorkMax    int64   `yaml:"work_max"`
	// MaxPriority draws priorities uniformly from [0, MaxPriority];
	// 0 gives every task priority 0.
	MaxPriority int `yaml:"max_priority"`
	// AffinityClasses, when non-empty, assigns each task a uniformly drawn
	// affinity hint from the listed classes (0 entries mean "no hint").
	AffinityClasses []int64 `yaml:"affinity_classes"`
}

// Validate checks generator parameter ranges.
func (s *GeneratorSpec) Validate() error {
	if s.NumTasks < 0 {
		return fmt.Errorf("num_tasks must be non-negative, got %d", s.NumTasks)
	}
	if s.Rate <= 0 {
		return fmt.Errorf("rate must be positive, got %f", s.Rate)
	}
	if s.WorkMin < 1 {
		return fmt.Errorf("work_min must be at least 1, got %d", s.WorkMin)
	}
	if s.WorkMax < s.WorkMin {
		return fmt.Errorf("work_max (%d) must be >= work_min (%d)", s.WorkMax, s.WorkMin)
	}
	if s.MaxPriority < 0 {
		return fmt.Errorf("max_priority must be non-negative, got %d", s.MaxPriority)
	}
	return nil
}

// Generate creates a task sequence with Poisson arrivals. In a Poisson
// process, the mean interarrival time is the inverse of the arrival rate;
// interarrival gaps are drawn exponentially and accumulated.
func Generate(spec *GeneratorSpec) ([]*sim.Task, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	workloadRNG := rng.ForSubsystem(sim.SubsystemWorkload)

	tasks := make([]*sim.Task, 0, spec.NumTasks)
	currentTime := int64(0)
	for id := 0; id < spec.NumTasks; id++ {
		gap := workloadRNG.ExpFloat64() / spec.Rate
		currentTime += int64(math.Round(gap))

		work := sampleWork(spec, workloadRNG)
		priority := 0
		if spec.MaxPriority > 0 {
			priority = workloadRNG.Intn(spec.MaxPriority + 1)
		}
		var affinity int64
		if len(spec.AffinityClasses) > 0 {
			affinity = spec.AffinityClasses[workloadRNG.Intn(len(spec.AffinityClasses))]
		}

		t, err := sim.NewTask(id, currentTime, work, priority, affinity)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// sampleWork draws a Gaussian work amount clamped to [WorkMin, WorkMax].
func sampleWork(spec *GeneratorSpec, rng *rand.Rand) int64 {
	if spec.WorkMin == spec.WorkMax {
		return spec.WorkMin
	}
	val := rng.NormFloat64()*spec.WorkStdDev + spec.WorkMean
	clamped := math.Min(float64(spec.WorkMax), math.Max(float64(spec.WorkMin), val))
	work := int64(math.Round(clamped))
	if work < 1 {
		return 1
	}
	return work
}
