package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Report pairs a finished pass with the metrics derived from it.
type Report struct {
	Result  *Result
	Metrics *Metrics
}

// ValidateWorkload checks the static fields of a workload before any pass runs.
func ValidateWorkload(procs []*Process) error {
	if len(procs) == 0 {
		return ErrEmptyWorkload
	}
	seen := make(map[int64]bool, len(procs))
	for i, p := range procs {
		if p == nil {
			return fmt.Errorf("%w: entry %d is nil", ErrMalformedWorkload, i)
		}
		if seen[p.ID()] {
			return fmt.Errorf("%w: duplicate process number %d", ErrMalformedWorkload, p.ID())
		}
		seen[p.ID()] = true
		if p.ArrivalTime() < 0 {
			return fmt.Errorf("%w: process %d has negative arrival time %d", ErrMalformedWorkload, p.ID(), p.ArrivalTime())
		}
		if p.ServiceTime() <= 0 {
			return fmt.Errorf("%w: process %d has non-positive service time %d", ErrMalformedWorkload, p.ID(), p.ServiceTime())
		}
	}
	return nil
}

// CloneWorkload returns independent, reset copies of every process.
func CloneWorkload(procs []*Process) []*Process {
	clones := make([]*Process, len(procs))
	for i, p := range procs {
		clones[i] = p.Clone()
	}
	return clones
}

// RunDisciplines runs each named scheduler, in order, on its own copy of the
// workload and computes the metrics of every pass. The caller's records are
// never mutated. Scheduler names must satisfy IsValidScheduler.
func RunDisciplines(procs []*Process, names []string, cfg Config) ([]*Report, error) {
	if err := ValidateWorkload(procs); err != nil {
		return nil, err
	}
	for _, name := range names {
		if !IsValidScheduler(name) {
			return nil, fmt.Errorf("unknown scheduler %q, valid: %v", name, ValidSchedulerNames())
		}
	}

	reports := make([]*Report, 0, len(names))
	for _, name := range names {
		scheduler := NewScheduler(name, cfg)
		result, err := scheduler.Schedule(CloneWorkload(procs))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", scheduler.Name(), err)
		}
		metrics, err := result.Metrics()
		if err != nil {
			return nil, err
		}
		logrus.Infof("%s: total=%d avg_wait=%.2f efficiency=%.2f%%",
			scheduler.Name(), metrics.TotalTime, metrics.AverageWaitingTime, metrics.CPUEfficiency)
		reports = append(reports, &Report{Result: result, Metrics: metrics})
	}
	return reports, nil
}
