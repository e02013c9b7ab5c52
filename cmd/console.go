package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coresched/coresched/sim"
)

// consoleCmd starts an interactive session against a configured engine.
// The console is a thin collaborator: it parses command text and issues
// calls onto the engine's step/run/query surface; the sim core never sees
// command strings.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactively step a simulation (step, run, stats, cores, tasks, quit)",
	Run: func(cmd *cobra.Command, args []string) {
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

		fmt.Printf("coresched console: %d cores, policy=%s, %d tasks\n",
			len(cfg.Classes()), engine.PolicyName(), len(tasks))
		fmt.Println("commands: step [n], run, stats, cores, tasks, quit")

		repl(engine, cfg.MaxSteps)
	},
}

// repl reads console commands until quit or EOF.
func repl(engine *sim.Engine, maxSteps int64) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[clock %d] > ", engine.Clock())
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "step":
			n := 1
			if len(fields) > 1 {
				parsed, err := strconv.Atoi(fields[1])
				if err != nil || parsed < 1 {
					fmt.Printf("step: want a positive count, got %q\n", fields[1])
					continue
				}
				n = parsed
			}
			executed, err := engine.Step(n)
			if err != nil {
				fmt.Printf("step failed after %d steps: %v\n", executed, err)
				continue
			}
			fmt.Printf("executed %d step(s), state=%s\n", executed, engine.State())
		case "run":
			if err := engine.Run(maxSteps); err != nil {
				fmt.Printf("run failed: %v\n", err)
				continue
			}
			fmt.Printf("state=%s at clock %d\n", engine.State(), engine.Clock())
		case "stats":
			engine.Summary().Print()
		case "cores":
			for _, c := range engine.CoreSnapshots() {
				running := "idle"
				if c.RunningTask >= 0 {
					running = fmt.Sprintf("task %d", c.RunningTask)
				}
				fmt.Printf("core %d (class %d): %s, queued %v, busy %d, idle %d, util %.2f%%\n",
					c.ID, c.Class, running, c.QueuedTasks, c.BusyTime, c.IdleTime, c.Utilization*100)
			}
		case "tasks":
			snaps := engine.TaskSnapshots()
			if len(snaps) == 0 {
				fmt.Println("no outstanding tasks")
				continue
			}
			for _, t := range snaps {
				fmt.Printf("task %d: %s, remaining %d, core %d, priority %d, arrival %d, migrations %d\n",
					t.ID, t.State, t.RemainingWork, t.AssignedCore, t.Priority, t.ArrivalTime, t.Migrations)
			}
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q (step, run, stats, cores, tasks, quit)\n", fields[0])
		}
	}
}
