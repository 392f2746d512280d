// Reduces a finished pass into aggregate performance metrics:
// total time, average waiting/turnaround/response time and CPU efficiency.

package sim

import (
	"fmt"
	"sort"
)

// Metrics aggregates statistics about one scheduler pass for final reporting.
type Metrics struct {
	Discipline   string `json:"discipline" yaml:"discipline"`
	ProcessCount int    `json:"process_count" yaml:"process_count"`

	TotalTime        int64 `json:"total_time" yaml:"total_time"` // max finish time
	TotalServiceTime int64 `json:"total_service_time" yaml:"total_service_time"`
	TotalSwitchTime  int64 `json:"total_switch_time" yaml:"total_switch_time"`
	IdleTime         int64 `json:"idle_time" yaml:"idle_time"`

	AverageWaitingTime    float64 `json:"average_waiting_time" yaml:"average_waiting_time"`
	AverageTurnaroundTime float64 `json:"average_turnaround_time" yaml:"average_turnaround_time"`
	AverageResponseTime   float64 `json:"average_response_time" yaml:"average_response_time"`
	WaitingTimeP90        float64 `json:"waiting_time_p90" yaml:"waiting_time_p90"`
	MaxWaitingTime        int64   `json:"max_waiting_time" yaml:"max_waiting_time"`

	CPUEfficiency float64 `json:"cpu_efficiency" yaml:"cpu_efficiency"` // percent
	Throughput    float64 `json:"throughput" yaml:"throughput"`         // processes per tick
}

// ComputeMetrics derives aggregate metrics from a fully finished set of processes
// and the switch overhead accumulated by the pass that produced them.
//
// Returns ErrEmptyWorkload for an empty set, ErrIncompletePass if any process
// is unfinished and ErrInvariantViolation if a process carries inconsistent times.
func ComputeMetrics(procs []*Process, totalSwitchTime int64) (*Metrics, error) {
	if len(procs) == 0 {
		return nil, ErrEmptyWorkload
	}

	m := &Metrics{
		ProcessCount:    len(procs),
		TotalSwitchTime: totalSwitchTime,
	}
	var totalWaiting, totalTurnaround int64
	waits := make([]int64, 0, len(procs))
	responses := make([]int64, 0, len(procs))
	for _, p := range procs {
		if !p.Finished() || p.State() != StateCompleted {
			return nil, fmt.Errorf("%w: process %d has %d ticks remaining", ErrIncompletePass, p.ID(), p.Remaining())
		}
		if err := checkInvariants(p); err != nil {
			return nil, err
		}
		m.TotalTime = max(m.TotalTime, p.FinishTime())
		m.TotalServiceTime += p.ServiceTime()
		m.MaxWaitingTime = max(m.MaxWaitingTime, p.WaitingTime())
		totalWaiting += p.WaitingTime()
		totalTurnaround += p.TurnaroundTime()
		waits = append(waits, p.WaitingTime())
		responses = append(responses, p.ResponseTime())
	}

	count := float64(len(procs))
	m.AverageWaitingTime = float64(totalWaiting) / count
	m.AverageTurnaroundTime = float64(totalTurnaround) / count
	m.AverageResponseTime = CalculateMean(responses)
	sort.Slice(waits, func(i, j int) bool { return waits[i] < waits[j] })
	m.WaitingTimeP90 = CalculatePercentile(waits, 90)
	m.CPUEfficiency = float64(m.TotalServiceTime) / float64(m.TotalServiceTime+totalSwitchTime) * 100
	if m.TotalTime > 0 {
		m.Throughput = count / float64(m.TotalTime)
	}
	return m, nil
}

// Metrics computes the metrics of a finished pass, including its idle time.
func (r *Result) Metrics() (*Metrics, error) {
	m, err := ComputeMetrics(r.Processes, r.TotalSwitchTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Discipline, err)
	}
	m.Discipline = r.Discipline
	m.IdleTime = r.IdleTime
	return m, nil
}

func checkInvariants(p *Process) error {
	switch {
	case p.FinishTime() < p.ArrivalTime():
		return fmt.Errorf("%w: process %d finished at %d before arriving at %d",
			ErrInvariantViolation, p.ID(), p.FinishTime(), p.ArrivalTime())
	case p.TurnaroundTime() != p.FinishTime()-p.ArrivalTime():
		return fmt.Errorf("%w: process %d turnaround %d != finish %d - arrival %d",
			ErrInvariantViolation, p.ID(), p.TurnaroundTime(), p.FinishTime(), p.ArrivalTime())
	case p.WaitingTime() != p.TurnaroundTime()-p.ServiceTime():
		return fmt.Errorf("%w: process %d waiting %d != turnaround %d - service %d",
			ErrInvariantViolation, p.ID(), p.WaitingTime(), p.TurnaroundTime(), p.ServiceTime())
	case p.WaitingTime() < 0:
		return fmt.Errorf("%w: process %d has negative waiting time %d",
			ErrInvariantViolation, p.ID(), p.WaitingTime())
	}
	return nil
}
