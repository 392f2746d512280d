// Package sim provides the core discrete-event engine for CPU scheduling simulation.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (pending → ready → running → completed) and per-pass state
//   - simulator.go: the per-pass context (clock, ready/finished queues, overhead accounting)
//   - fcfs.go, round_robin.go: the two dispatch disciplines
//   - metrics.go: reduction of a finished pass into aggregate metrics
//
// # Architecture
//
// Every scheduler pass builds its own Simulator over a freshly reset workload,
// so passes never observe each other's state. The driver (driver.go) clones the
// workload once per discipline and runs the passes sequentially.
//
// Sub-packages:
//   - sim/workload/: workload ingestion (text, CSV, YAML) and seeded synthetic generation
//     (drawing from rng.go's PartitionedRNG)
//   - sim/report/: human and machine readable output
//   - sim/trace/: per-event queue snapshots for inspection
package sim
