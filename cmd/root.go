package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coresched/coresched/sim"
	"github.com/coresched/coresched/sim/trace"
	"github.com/coresched/coresched/sim/workload"
)

var (
	// CLI flags for simulation configuration
	logLevel          string  // Log verbosity level
	configPath        string  // Optional YAML simulation config
	coreCount         int     // Number of cores (homogeneous, class 1)
	coreClasses       []int64 // Per-core performance classes (overrides coreCount)
	policyName        string  // Scheduling policy name
	rebalanceInterval int     // Steps between rebalance invocations
	loadGapThreshold  int64   // Least-loaded migration trigger (work units)
	preemptive        bool    // Priority policy preemption switch
	maxSteps          int64   // Run bound before SimulationTimeoutError
	showTrace         bool    // Print the decision trace summary

	// CLI flags for workload selection
	workloadPath string // CSV/JSON workload file
	seed         int64  // Seed for synthetic workload generation
	numTasks     int    // Synthetic workload task count
	arrivalRate  float64
	workMean     float64
	workStdev    float64
	workMin      int64
	workMax      int64
	maxPriority  int
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "coresched",
	Short: "Discrete-time simulator of task scheduling across processor cores",
}

// buildConfig assembles the simulation config from --config or flags.
func buildConfig() (*sim.SimConfig, error) {
	if configPath != "" {
		cfg, err := sim.LoadSimConfig(configPath)
		if err != nil {
			return nil, err
		}
		// a config file that omits max_steps gets the flag default
		if cfg.MaxSteps == 0 {
			cfg.MaxSteps = maxSteps
		}
		return cfg, nil
	}
	cfg := &sim.SimConfig{
		CoreCount:   coreCount,
		CoreClasses: coreClasses,
		MaxSteps:    maxSteps,
		Scheduler: sim.SchedulerConfig{
			Policy:            policyName,
			RebalanceInterval: &rebalanceInterval,
			LoadGapThreshold:  &loadGapThreshold,
			Preemptive:        &preemptive,
		},
	}
	return cfg, nil
}

// buildWorkload loads the workload file when given, otherwise synthesizes
// one from the generator flags.
func buildWorkload() ([]*sim.Task, error) {
	if workloadPath != "" {
		descriptors, err := workload.Load(workloadPath)
		if err != nil {
			return nil, err
		}
		return workload.ToTasks(descriptors)
	}
	spec := &workload.GeneratorSpec{
		Seed:        seed,
		NumTasks:    numTasks,
		Rate:        arrivalRate,
		WorkMean:    workMean,
		WorkStdDev:  workStdev,
		WorkMin:     workMin,
		WorkMax:     workMax,
		MaxPriority: maxPriority,
	}
	return workload.Generate(spec)
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig()
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}
		engine, err := sim.NewEngineFromConfig(cfg)
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}

		tasks, err := buildWorkload()
		if err != nil {
			logrus.Fatalf("Workload error: %v", err)
		}
		if err := engine.AddTasks(tasks); err != nil {
			logrus.Fatalf("Workload error: %v", err)
		}

		var tr *trace.Trace
		if showTrace {
			tr = trace.New()
			engine.SetTrace(tr)
		}

		logrus.Infof("Starting simulation: %d cores, policy=%s, %d tasks, max %d steps",
			len(cfg.Classes()), engine.PolicyName(), len(tasks), cfg.MaxSteps)

		startTime := time.Now()
		if err := engine.Run(cfg.MaxSteps); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation finished in %v wall time", time.Since(startTime))

		engine.Summary().Print()
		if showTrace {
			printTraceSummary(tr)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSimFlags registers the flags shared by run, compare, and console.
func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML simulation config file (overrides core/scheduler flags)")

	cmd.Flags().IntVar(&coreCount, "cores", 4, "Number of cores (homogeneous, class 1)")
	cmd.Flags().Int64SliceVar(&coreClasses, "core-classes", nil, "Comma-separated per-core performance classes (overrides --cores)")
	cmd.Flags().StringVar(&policyName, "policy", "round-robin", "Scheduling policy")
	cmd.Flags().IntVar(&rebalanceInterval, "rebalance-interval", 1, "Steps between rebalance invocations")
	cmd.Flags().Int64Var(&loadGapThreshold, "load-gap-threshold", 0, "Load gap (work units) that triggers a least-loaded migration")
	cmd.Flags().BoolVar(&preemptive, "preemptive", false, "Allow the priority policy to preempt running tasks")
	cmd.Flags().Int64Var(&maxSteps, "max-steps", 1_000_000, "Step bound before the run is declared divergent")
	cmd.Flags().BoolVar(&showTrace, "show-trace", false, "Print the scheduling decision trace summary")

	cmd.Flags().StringVar(&workloadPath, "workload", "", "Workload file (CSV or JSON); empty generates a synthetic workload")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for synthetic workload generation")
	cmd.Flags().IntVar(&numTasks, "num-tasks", 100, "Synthetic workload task count")
	cmd.Flags().Float64Var(&arrivalRate, "rate", 0.5, "Mean arrivals per step (Poisson)")
	cmd.Flags().Float64Var(&workMean, "work-mean", 10, "Mean task work units")
	cmd.Flags().Float64Var(&workStdev, "work-stddev", 4, "Stdev of task work units")
	cmd.Flags().Int64Var(&workMin, "work-min", 1, "Min task work units")
	cmd.Flags().Int64Var(&workMax, "work-max", 50, "Max task work units")
	cmd.Flags().IntVar(&maxPriority, "max-priority", 0, "Priorities drawn uniformly from [0, max-priority]")
}

// init sets up CLI flags and subcommands
func init() {
	addSimFlags(runCmd)
	addSimFlags(compareCmd)
	addSimFlags(consoleCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(consoleCmd)
}
