// Package sim provides a deterministic discrete-time simulator of task
// scheduling across multiple processor cores.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - task.go: Task lifecycle (queued → running → completed) and work accounting
//   - core.go: Per-core state: local queue, current task, busy/idle accumulators
//   - engine.go: The clock, the fixed per-step order, and completion harvesting
//
// # Architecture
//
// The engine drives one step at a time: release arrivals, rebalance, order
// queues and assign idle cores, tick every core, harvest completions,
// advance the clock. Policies decide placement and migration; the engine
// applies their decisions. Replaying the same workload and configuration
// yields bit-identical MetricsRecord sequences.
//
// Sub-packages:
//   - sim/workload/: task descriptor loaders (CSV/JSON) and synthetic generation
//   - sim/trace/: scheduling decision trace recording
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Policy: place arrivals and propose migrations (OnArrival/OnRebalance)
//   - QueueOrderer: impose a per-core queue order other than FIFO
//   - Preemptor: displace a running task for a higher-priority queued one
//   - CompletionObserver: observe completions before the next step
//
// Adding a policy means adding a variant with its two handlers and
// registering its name in ValidPolicies, not subclassing.
package sim
