// Defines the Process record that models one job of the workload.
// Static fields are fixed at construction; everything else is per-pass state
// that a scheduler mutates and Reset restores.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process within one pass.
type ProcessState string

const (
	StatePending   ProcessState = "pending"   // not yet arrived / admitted
	StateReady     ProcessState = "ready"     // waiting in the ready queue
	StateRunning   ProcessState = "running"   // holds the CPU
	StateCompleted ProcessState = "completed" // remaining service reached zero
)

// Process models a single job's lifecycle in the simulation.
// ID, arrival and service time are immutable after NewProcess. All other fields
// belong to the scheduler pass currently running and are cleared by Reset.
type Process struct {
	id          int64 // process_number, caller assigned
	arrivalTime int64 // ticks, >= 0
	serviceTime int64 // total CPU ticks required, > 0

	remaining         int64
	state             ProcessState
	executionTime     int64 // clock at the most recent dispatch
	firstDispatchTime int64 // clock at the first dispatch, -1 until dispatched
	finishTime        int64
	waitingTime       int64
	turnaroundTime    int64
	dispatches        int
}

// NewProcess creates a process in its pre-run state.
// Validation of the values is the caller's job (see ValidateWorkload).
func NewProcess(id, arrivalTime, serviceTime int64) *Process {
	p := &Process{
		id:          id,
		arrivalTime: arrivalTime,
		serviceTime: serviceTime,
	}
	p.Reset()
	return p
}

// Reset returns the process to its pre-run state.
func (p *Process) Reset() {
	p.remaining = p.serviceTime
	p.state = StatePending
	p.executionTime = 0
	p.firstDispatchTime = -1
	p.finishTime = 0
	p.waitingTime = 0
	p.turnaroundTime = 0
	p.dispatches = 0
}

// Clone returns an independent copy of p in its pre-run state.
func (p *Process) Clone() *Process {
	return NewProcess(p.id, p.arrivalTime, p.serviceTime)
}

func (p *Process) ID() int64           { return p.id }
func (p *Process) ArrivalTime() int64  { return p.arrivalTime }
func (p *Process) ServiceTime() int64  { return p.serviceTime }
func (p *Process) Remaining() int64    { return p.remaining }
func (p *Process) State() ProcessState { return p.state }

// ExecutionTime is the clock value at the most recent dispatch.
func (p *Process) ExecutionTime() int64 { return p.executionTime }

// FirstDispatchTime is the clock value at the first dispatch, or -1 if the
// process has not run in the current pass.
func (p *Process) FirstDispatchTime() int64 { return p.firstDispatchTime }

// ResponseTime is the delay between arrival and first dispatch.
func (p *Process) ResponseTime() int64 {
	if p.firstDispatchTime < 0 {
		return 0
	}
	return p.firstDispatchTime - p.arrivalTime
}

func (p *Process) FinishTime() int64     { return p.finishTime }
func (p *Process) WaitingTime() int64    { return p.waitingTime }
func (p *Process) TurnaroundTime() int64 { return p.turnaroundTime }

// Dispatches is the number of times the process was given the CPU.
func (p *Process) Dispatches() int { return p.dispatches }

// Finished reports whether all required service has been delivered.
func (p *Process) Finished() bool { return p.remaining == 0 }

// admit marks the process as waiting in a ready queue.
func (p *Process) admit() {
	p.state = StateReady
}

// dispatch records that the process was handed the CPU at clock.
func (p *Process) dispatch(clock int64) {
	p.state = StateRunning
	p.executionTime = clock
	if p.firstDispatchTime < 0 {
		p.firstDispatchTime = clock
	}
	p.dispatches++
}

// run delivers up to slice ticks of service and returns the ticks actually used.
func (p *Process) run(slice int64) int64 {
	used := min(slice, p.remaining)
	p.remaining -= used
	return used
}

// preempt returns a running, unfinished process to the ready state.
func (p *Process) preempt() {
	p.state = StateReady
}

// complete stamps the finish time and derives turnaround and waiting time.
// Panics if the process still needs service: completion is only a consequence
// of remaining service reaching zero.
func (p *Process) complete(clock int64) {
	if !p.Finished() {
		panic(fmt.Sprintf("complete: process %d still has %d ticks remaining", p.id, p.remaining))
	}
	p.state = StateCompleted
	p.finishTime = clock
	p.turnaroundTime = p.finishTime - p.arrivalTime
	p.waitingTime = p.turnaroundTime - p.serviceTime
}

// String returns a human-readable representation of a Process.
func (p *Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Arrival: %d, Service: %d, Remaining: %d)",
		p.id, p.state, p.arrivalTime, p.serviceTime, p.remaining)
}
