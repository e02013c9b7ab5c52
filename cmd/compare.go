package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coresched/coresched/sim"
	"github.com/coresched/coresched/sim/trace"
)

// compareCmd runs every registered policy over the same workload and prints
// a side-by-side metrics table. Each policy gets an independent engine and a
// freshly built workload, so runs cannot interfere.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all scheduling policies over the same workload side by side",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "policy\tsteps\tcompleted\tthroughput\tavg turnaround\tavg response\tutil\tbalance\tenergy eff\tmigrations")

		for _, name := range sim.PolicyNames() {
			cfg, err := buildConfig()
			if err != nil {
				logrus.Fatalf("Configuration error: %v", err)
			}
			cfg.Scheduler.Policy = name

			engine, err := sim.NewEngineFromConfig(cfg)
			if err != nil {
				logrus.Fatalf("Configuration error: %v", err)
			}
			// rebuild the workload per engine: tasks carry mutable runtime
			// state and must not be shared across runs
			tasks, err := buildWorkload()
			if err != nil {
				logrus.Fatalf("Workload error: %v", err)
			}
			if err := engine.AddTasks(tasks); err != nil {
				logrus.Fatalf("Workload error: %v", err)
			}

			if err := engine.Run(cfg.MaxSteps); err != nil {
				logrus.Warnf("Policy %s did not complete: %v", name, err)
			}

			s := engine.Summary()
			fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%.2f\t%.2f\t%.2f%%\t%.4f\t%.4f\t%d\n",
				name, s.ElapsedSteps, s.CompletedTasks, s.Throughput,
				s.AvgTurnaround, s.AvgResponse, s.AggregateUtilization*100,
				s.LoadBalanceScore, s.EnergyEfficiency, s.TotalMigrations)
		}
		w.Flush()
	},
}

// printTraceSummary renders the decision trace summary after a run.
func printTraceSummary(tr *trace.Trace) {
	s := trace.Summarize(tr)
	fmt.Println("=== Decision Trace ===")
	fmt.Printf("Placements  : %d\n", s.Placements)
	fmt.Printf("Migrations  : %d\n", s.Migrations)
	fmt.Printf("Preemptions : %d\n", s.Preemptions)
	cores := make([]int, 0, len(s.CoreDistribution))
	for core := range s.CoreDistribution {
		cores = append(cores, core)
	}
	sort.Ints(cores)
	for _, core := range cores {
		fmt.Printf("Core %d placements : %d\n", core, s.CoreDistribution[core])
	}
	if s.MostMigratedTask >= 0 {
		fmt.Printf("Most migrated task: %d\n", s.MostMigratedTask)
	}
}
