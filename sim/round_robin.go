package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// RoundRobinScheduler gives each ready process at most one quantum before
// moving it to the tail of the ready queue.
type RoundRobinScheduler struct {
	cfg Config
}

// NewRoundRobinScheduler creates a preemptive round-robin scheduler.
// The quantum is validated when Schedule is called.
func NewRoundRobinScheduler(cfg Config) *RoundRobinScheduler {
	return &RoundRobinScheduler{cfg: cfg}
}

func (r *RoundRobinScheduler) Name() string { return NameRoundRobin }

// Quantum returns the configured time slice.
func (r *RoundRobinScheduler) Quantum() int64 { return r.cfg.Quantum }

// Schedule runs one round-robin pass.
//
// Arrivals are admitted, in arrival order, whenever the clock moves. A process
// whose quantum expires is requeued only after every process that arrived at or
// before the end of its slice has been admitted. The switch cost is charged
// whenever the next process to run differs from the one that just ran.
func (r *RoundRobinScheduler) Schedule(procs []*Process) (*Result, error) {
	if err := checkPass(procs, r.cfg); err != nil {
		return nil, err
	}
	if r.cfg.Quantum <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantum, r.cfg.Quantum)
	}

	sim := newSimulator(NameRoundRobin, procs, r.cfg)
	n := len(sim.Processes)
	next := 0 // admission cursor into the arrival-sorted workload

	admit := func() {
		for next < n && sim.Processes[next].ArrivalTime() <= sim.Clock {
			p := sim.Processes[next]
			p.admit()
			sim.ReadyQ.Enqueue(p)
			next++
		}
	}

	logrus.Infof("[tick %07d] rr: scheduling %d processes, quantum=%d, switch=%d",
		sim.Clock, n, r.cfg.Quantum, sim.SwitchTime)
	admit()
	for sim.FinishedQ.Len() < n {
		if sim.ReadyQ.Len() == 0 {
			// Every admitted process has finished, so the next unadmitted one
			// lies strictly in the future.
			sim.idleUntil(sim.Processes[next].ArrivalTime())
			admit()
			continue
		}

		p := sim.ReadyQ.Dequeue()
		sim.dispatch(p)
		sim.execute(p, r.cfg.Quantum)
		admit()

		if p.Finished() {
			sim.finish(p)
		} else {
			p.preempt()
			sim.ReadyQ.Enqueue(p)
			sim.inspect(trace.EventPreempt, p)
		}

		if head := sim.ReadyQ.Peek(); head != nil && head != p {
			sim.contextSwitch(p)
			admit()
		}
	}
	logrus.Infof("[tick %07d] rr: pass complete, switch overhead=%d", sim.Clock, sim.TotalSwitchTime)

	return sim.result("Round Robin (preemptive)"), nil
}
