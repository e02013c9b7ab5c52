// Tracks per-task completion records and derives simulation-wide
// performance metrics. All aggregates are pure functions of the recorded
// history -- recomputable at any time without replaying the simulation.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MetricsRecord is the read-only completed-task record handed to the
// aggregator. Ownership of a task passes here on completion; the engine
// never mutates a task after its record is emitted.
type MetricsRecord struct {
	TaskID         int
	CoreID         int // core on which the task completed
	ArrivalTime    int64
	StartTime      int64
	CompletionTime int64 // end-of-step stamp
	TotalWork      int64
	Turnaround     int64 // CompletionTime - ArrivalTime
	Response       int64 // StartTime - ArrivalTime
	Migrations     int
}

// Distribution captures a statistical summary of a metric.
type Distribution struct {
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
	Min   float64
	Max   float64
	Count int
}

// NewDistribution computes a Distribution from raw values.
// Returns a zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
		P99:   stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Count: len(sorted),
	}
}

// Summary aggregates the record stream and per-core accumulators into the
// metrics the simulator reports. Plain queryable values; rendering is the
// caller's concern.
type Summary struct {
	CompletedTasks int
	ElapsedSteps   int64
	// NoData is set when no task completed; the averages are then defined
	// as zero rather than a division error.
	NoData bool

	Throughput      float64 // completed tasks per elapsed step
	AvgTurnaround   float64
	AvgResponse     float64
	Turnaround      Distribution
	TotalMigrations int

	PerCoreUtilization   []float64
	AggregateUtilization float64
	// LoadBalanceScore is 1 - stddev(util)/mean(util): 1 for perfectly even
	// utilization, lower as dispersion grows. Defined as 1 when mean
	// utilization is 0.
	LoadBalanceScore float64
	// EnergyEfficiency is completed work units per unit of modeled energy,
	// with energy = sum over cores of busyTime * class^2 (simplified
	// quadratic power model).
	EnergyEfficiency float64
}

// Summarize derives a Summary from the completed-task records and the
// per-core accumulators at the given elapsed step count.
func Summarize(records []MetricsRecord, cores []*Core, elapsed int64) Summary {
	s := Summary{
		CompletedTasks: len(records),
		ElapsedSteps:   elapsed,
	}

	if len(records) == 0 {
		s.NoData = true
	} else {
		turnarounds := make([]float64, len(records))
		responses := make([]float64, len(records))
		for i, r := range records {
			turnarounds[i] = float64(r.Turnaround)
			responses[i] = float64(r.Response)
			s.TotalMigrations += r.Migrations
		}
		s.AvgTurnaround = stat.Mean(turnarounds, nil)
		s.AvgResponse = stat.Mean(responses, nil)
		s.Turnaround = NewDistribution(turnarounds)
	}
	if elapsed > 0 {
		s.Throughput = float64(len(records)) / float64(elapsed)
	}

	s.PerCoreUtilization = make([]float64, len(cores))
	var totalBusy, totalElapsed int64
	var energy, completedWork float64
	for i, c := range cores {
		s.PerCoreUtilization[i] = c.Utilization()
		totalBusy += c.BusyTime()
		totalElapsed += c.BusyTime() + c.IdleTime()
		energy += float64(c.BusyTime()) * float64(c.Class) * float64(c.Class)
	}
	if totalElapsed > 0 {
		s.AggregateUtilization = float64(totalBusy) / float64(totalElapsed)
	}
	s.LoadBalanceScore = loadBalanceScore(s.PerCoreUtilization)

	for _, r := range records {
		completedWork += float64(r.TotalWork)
	}
	if energy > 0 {
		s.EnergyEfficiency = completedWork / energy
	}
	return s
}

// loadBalanceScore returns 1 - stddev/mean of the utilizations, 1 when the
// mean is 0 or there are fewer than two cores (no dispersion to measure).
func loadBalanceScore(utils []float64) float64 {
	if len(utils) < 2 {
		return 1
	}
	mean := stat.Mean(utils, nil)
	if mean == 0 {
		return 1
	}
	return 1 - stat.StdDev(utils, nil)/mean
}

// Print displays the aggregated metrics at the end of a simulation.
func (s Summary) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Completed Tasks      : %d\n", s.CompletedTasks)
	fmt.Printf("Elapsed Steps        : %d\n", s.ElapsedSteps)
	if s.NoData {
		fmt.Println("No completed tasks: turnaround/response averages undefined (reported as 0)")
	}
	fmt.Printf("Throughput           : %.4f tasks/step\n", s.Throughput)
	fmt.Printf("Average Turnaround   : %.2f steps\n", s.AvgTurnaround)
	fmt.Printf("Average Response     : %.2f steps\n", s.AvgResponse)
	fmt.Printf("Turnaround P50/P95   : %.1f / %.1f steps\n", s.Turnaround.P50, s.Turnaround.P95)
	fmt.Printf("Total Migrations     : %d\n", s.TotalMigrations)
	for i, u := range s.PerCoreUtilization {
		fmt.Printf("Core %d Utilization   : %.2f%%\n", i, u*100)
	}
	fmt.Printf("Aggregate Utilization: %.2f%%\n", s.AggregateUtilization*100)
	fmt.Printf("Load Balance Score   : %.4f\n", s.LoadBalanceScore)
	fmt.Printf("Energy Efficiency    : %.4f work/energy\n", s.EnergyEfficiency)
}
