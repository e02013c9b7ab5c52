package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadSimConfig(t *testing.T) {
	path := writeConfigFile(t, `
core_classes: [1, 1, 3]
scheduler:
  policy: work-stealing
  rebalance_interval: 2
  preemptive: true
max_steps: 5000
`)
	cfg, err := LoadSimConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 1, 3}, cfg.CoreClasses)
	assert.Equal(t, PolicyWorkStealing, cfg.Scheduler.Policy)
	assert.Equal(t, int64(5000), cfg.MaxSteps)
	if assert.NotNil(t, cfg.Scheduler.RebalanceInterval) {
		assert.Equal(t, 2, *cfg.Scheduler.RebalanceInterval)
	}
	if assert.NotNil(t, cfg.Scheduler.Preemptive) {
		assert.True(t, *cfg.Scheduler.Preemptive)
	}
	assert.Nil(t, cfg.Scheduler.LoadGapThreshold, "absent keys stay unset")
	assert.NoError(t, cfg.Validate())
}

func TestLoadSimConfig_Errors(t *testing.T) {
	_, err := LoadSimConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSimConfig(writeConfigFile(t, "core_count: [not, a, number]"))
	assert.Error(t, err)
}

func TestSimConfigValidate(t *testing.T) {
	interval := -1
	tests := []struct {
		name string
		cfg  SimConfig
		ok   bool
	}{
		{"defaults with core count", SimConfig{CoreCount: 2}, true},
		{"explicit classes", SimConfig{CoreClasses: []int64{1, 2}}, true},
		{"no cores", SimConfig{}, false},
		{"negative core count", SimConfig{CoreCount: -1}, false},
		{"zero class", SimConfig{CoreClasses: []int64{1, 0}}, false},
		{"negative rebalance interval", SimConfig{
			CoreCount: 1,
			Scheduler: SchedulerConfig{RebalanceInterval: &interval},
		}, false},
		{"negative max steps", SimConfig{CoreCount: 1, MaxSteps: -5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSimConfigValidate_UnknownPolicy(t *testing.T) {
	cfg := SimConfig{CoreCount: 1, Scheduler: SchedulerConfig{Policy: "fifo"}}
	err := cfg.Validate()
	var unknown *UnknownPolicyError
	if assert.True(t, errors.As(err, &unknown)) {
		assert.Equal(t, "fifo", unknown.Name)
	}
}

func TestSimConfigClasses(t *testing.T) {
	homogeneous := SimConfig{CoreCount: 3}
	assert.Equal(t, []int64{1, 1, 1}, homogeneous.Classes())

	hetero := SimConfig{CoreCount: 3, CoreClasses: []int64{2, 4}}
	assert.Equal(t, []int64{2, 4}, hetero.Classes(), "explicit classes win over core_count")
}

func TestNewEngineFromConfig(t *testing.T) {
	gap := int64(3)
	cfg := &SimConfig{
		CoreClasses: []int64{1, 2},
		Scheduler:   SchedulerConfig{Policy: PolicyLeastLoaded, LoadGapThreshold: &gap},
	}
	e, err := NewEngineFromConfig(cfg)
	assert.NoError(t, err)
	assert.Equal(t, PolicyLeastLoaded, e.PolicyName())
	assert.Equal(t, EngineConfigured, e.State())
	assert.Len(t, e.CoreSnapshots(), 2)

	_, err = NewEngineFromConfig(&SimConfig{})
	assert.Error(t, err)
}
