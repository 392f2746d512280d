// Package trace provides event-trace recording for inspecting a scheduler pass.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventKind names the scheduling event that produced a record.
type EventKind string

const (
	EventDispatch EventKind = "dispatch" // a process was handed the CPU
	EventPreempt  EventKind = "preempt"  // quantum expired, process requeued
	EventComplete EventKind = "complete" // a process finished
	EventIdle     EventKind = "idle"     // CPU idle until the next arrival
	EventSwitch   EventKind = "switch"   // context-switch overhead charged
)

// EventRecord captures the ready and finished queues at a scheduling event.
type EventRecord struct {
	Clock     int64     `json:"clock" yaml:"clock"`
	Kind      EventKind `json:"kind" yaml:"kind"`
	ProcessID int64     `json:"process" yaml:"process"`
	Ready     []int64   `json:"ready" yaml:"ready"`
	Finished  []int64   `json:"finished" yaml:"finished"`
}
