// sim/simulator.go
package sim

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// TimeSlice is one contiguous stretch of CPU time given to a single process.
type TimeSlice struct {
	ProcessID int64 `json:"process" yaml:"process"`
	Start     int64 `json:"start" yaml:"start"`
	Stop      int64 `json:"stop" yaml:"stop"`
}

// Result is the outcome of one scheduler pass over a workload.
type Result struct {
	Discipline      string
	Title           string
	Processes       []*Process // arrival order (stable on ties)
	FinishOrder     []int64    // process numbers in completion order
	TotalSwitchTime int64
	IdleTime        int64
	Timeline        []TimeSlice
	Trace           *trace.SimulationTrace // nil unless tracing is enabled
}

// Simulator is the context of a single scheduler pass: the clock, the ready and
// finished queues and the overhead accumulators. Every pass builds its own
// Simulator, so nothing leaks from one discipline into the next.
type Simulator struct {
	Clock      int64
	SwitchTime int64
	// Processes is the workload sorted by arrival time (stable on ties).
	Processes []*Process
	// ReadyQ holds processes waiting for the CPU. Round-robin dispatches from it;
	// FCFS treats it as a derived view rebuilt on inspection.
	ReadyQ *ReadyQueue
	// FinishedQ holds completed processes in completion order.
	FinishedQ       *ReadyQueue
	TotalSwitchTime int64
	IdleTime        int64
	Timeline        []TimeSlice
	Trace           *trace.SimulationTrace

	discipline   string
	derivedViews bool
}

// newSimulator sorts a private copy of the process slice by arrival time and
// resets every record. The caller's slice order is left untouched.
func newSimulator(discipline string, procs []*Process, cfg Config) *Simulator {
	sorted := make([]*Process, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ArrivalTime() < sorted[j].ArrivalTime()
	})
	for _, p := range sorted {
		p.Reset()
	}

	s := &Simulator{
		Clock:      0,
		SwitchTime: cfg.SwitchTime,
		Processes:  sorted,
		ReadyQ:     &ReadyQueue{},
		FinishedQ:  &ReadyQueue{},
		Timeline:   make([]TimeSlice, 0, len(sorted)),
		discipline: discipline,
	}
	if cfg.Trace == trace.TraceLevelEvents {
		s.Trace = trace.NewSimulationTrace(discipline)
	}
	return s
}

// idleUntil advances the clock to t if the CPU has nothing to run before then.
func (sim *Simulator) idleUntil(t int64) {
	if sim.Clock >= t {
		return
	}
	logrus.Debugf("[tick %07d] %s: CPU idle until %d", sim.Clock, sim.discipline, t)
	sim.IdleTime += t - sim.Clock
	sim.Clock = t
	sim.inspect(trace.EventIdle, nil)
}

// dispatch hands the CPU to p at the current clock.
func (sim *Simulator) dispatch(p *Process) {
	p.dispatch(sim.Clock)
	sim.inspect(trace.EventDispatch, p)
}

// execute runs p for at most slice ticks and advances the clock by the ticks used.
func (sim *Simulator) execute(p *Process, slice int64) int64 {
	start := sim.Clock
	used := p.run(slice)
	sim.Clock += used
	sim.Timeline = append(sim.Timeline, TimeSlice{ProcessID: p.ID(), Start: start, Stop: sim.Clock})
	return used
}

// finish completes p at the current clock.
func (sim *Simulator) finish(p *Process) {
	p.complete(sim.Clock)
	sim.FinishedQ.Enqueue(p)
	logrus.Debugf("[tick %07d] %s: P%d finished (turnaround=%d, waiting=%d)",
		sim.Clock, sim.discipline, p.ID(), p.TurnaroundTime(), p.WaitingTime())
	sim.inspect(trace.EventComplete, p)
}

// contextSwitch charges the fixed switch overhead to the clock.
func (sim *Simulator) contextSwitch(from *Process) {
	if sim.SwitchTime == 0 {
		return
	}
	sim.Clock += sim.SwitchTime
	sim.TotalSwitchTime += sim.SwitchTime
	sim.inspect(trace.EventSwitch, from)
}

// rebuildViews recomputes the ready and finished queues from each record's
// arrival/finished/finish-time state at the current clock.
func (sim *Simulator) rebuildViews() {
	sim.ReadyQ.Clear()
	sim.FinishedQ.Clear()
	for _, p := range sim.Processes {
		if !p.Finished() && p.ArrivalTime() <= sim.Clock {
			sim.ReadyQ.Enqueue(p)
		}
		if p.Finished() && p.FinishTime() <= sim.Clock {
			sim.FinishedQ.Enqueue(p)
		}
	}
}

// inspect records a snapshot of both queues. It is a no-op unless tracing or
// debug logging is enabled.
func (sim *Simulator) inspect(kind trace.EventKind, p *Process) {
	if sim.Trace == nil && !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	if sim.derivedViews {
		sim.rebuildViews()
	}
	var id int64
	if p != nil {
		id = p.ID()
	}
	logrus.Debugf("[tick %07d] %s: %s P%d ready=%s finished=%s",
		sim.Clock, sim.discipline, kind, id, sim.ReadyQ, sim.FinishedQ)
	sim.Trace.RecordEvent(trace.EventRecord{
		Clock:     sim.Clock,
		Kind:      kind,
		ProcessID: id,
		Ready:     sim.ReadyQ.IDs(),
		Finished:  sim.FinishedQ.IDs(),
	})
}

// result packages the finished pass.
func (sim *Simulator) result(title string) *Result {
	return &Result{
		Discipline:      sim.discipline,
		Title:           title,
		Processes:       sim.Processes,
		FinishOrder:     sim.FinishedQ.IDs(),
		TotalSwitchTime: sim.TotalSwitchTime,
		IdleTime:        sim.IdleTime,
		Timeline:        sim.Timeline,
		Trace:           sim.Trace,
	}
}
