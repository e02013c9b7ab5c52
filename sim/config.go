package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchedulerConfig holds scheduling policy selection and parameters.
// Nil pointer fields mean "not set in YAML" — defaults apply.
type SchedulerConfig struct {
	Policy            string `yaml:"policy"`
	RebalanceInterval *int   `yaml:"rebalance_interval"`
	LoadGapThreshold  *int64 `yaml:"load_gap_threshold"`
	Preemptive        *bool  `yaml:"preemptive"`
}

// SimConfig holds a complete simulation configuration, loadable from a
// YAML file or assembled from CLI flags.
type SimConfig struct {
	// CoreCount is the number of cores when CoreClasses is empty
	// (homogeneous, class 1).
	CoreCount int `yaml:"core_count"`
	// CoreClasses assigns a performance class (work units per step) per
	// core; overrides CoreCount when non-empty.
	CoreClasses []int64         `yaml:"core_classes"`
	Scheduler   SchedulerConfig `yaml:"scheduler"`
	// MaxSteps bounds Run; exceeding it is a SimulationTimeoutError.
	MaxSteps int64 `yaml:"max_steps"`
}

// LoadSimConfig reads and parses a YAML simulation configuration file.
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sim config: %w", err)
	}
	var cfg SimConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sim config: %w", err)
	}
	return &cfg, nil
}

// Validate checks policy names and parameter ranges. Unknown policy names
// surface UnknownPolicyError here, at configuration time.
func (c *SimConfig) Validate() error {
	if !ValidPolicies[c.Scheduler.Policy] {
		return &UnknownPolicyError{Name: c.Scheduler.Policy}
	}
	if c.CoreCount < 0 {
		return fmt.Errorf("core_count must be non-negative, got %d", c.CoreCount)
	}
	if c.CoreCount == 0 && len(c.CoreClasses) == 0 {
		return fmt.Errorf("configuration names no cores: set core_count or core_classes")
	}
	for i, class := range c.CoreClasses {
		if class <= 0 {
			return fmt.Errorf("core_classes[%d] must be positive, got %d", i, class)
		}
	}
	if c.Scheduler.RebalanceInterval != nil && *c.Scheduler.RebalanceInterval < 0 {
		return fmt.Errorf("rebalance_interval must be non-negative, got %d", *c.Scheduler.RebalanceInterval)
	}
	if c.Scheduler.LoadGapThreshold != nil && *c.Scheduler.LoadGapThreshold < 0 {
		return fmt.Errorf("load_gap_threshold must be non-negative, got %d", *c.Scheduler.LoadGapThreshold)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.MaxSteps)
	}
	return nil
}

// Classes resolves the per-core performance classes: CoreClasses when set,
// otherwise CoreCount homogeneous class-1 cores.
func (c *SimConfig) Classes() []int64 {
	if len(c.CoreClasses) > 0 {
		return c.CoreClasses
	}
	classes := make([]int64, c.CoreCount)
	for i := range classes {
		classes[i] = 1
	}
	return classes
}

// Params assembles the PolicyParams encoded in the scheduler section.
func (c *SimConfig) Params() PolicyParams {
	var p PolicyParams
	if c.Scheduler.RebalanceInterval != nil {
		p.RebalanceInterval = *c.Scheduler.RebalanceInterval
	}
	if c.Scheduler.LoadGapThreshold != nil {
		p.LoadGapThreshold = *c.Scheduler.LoadGapThreshold
	}
	if c.Scheduler.Preemptive != nil {
		p.Preemptive = *c.Scheduler.Preemptive
	}
	return p
}

// NewEngineFromConfig validates the configuration, resolves the policy,
// and builds a ready-to-run engine.
func NewEngineFromConfig(cfg *SimConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := NewPolicy(cfg.Scheduler.Policy, cfg.Params())
	if err != nil {
		return nil, err
	}
	return NewEngine(cfg.Classes(), policy, cfg.Params().RebalanceInterval), nil
}
