// Package workload loads process descriptors from text, CSV and YAML sources
// and converts them into sim.Process records.
package workload

import (
	"fmt"
	"math"

	"github.com/schedsim/schedsim/sim"
)

// Descriptor is the static description of one process as read from a source.
// Service is read as a number so that inputs such as "12.0" are accepted;
// it must still be a whole number of ticks.
type Descriptor struct {
	ID      int64   `yaml:"id" json:"id"`
	Arrival int64   `yaml:"arrival" json:"arrival"`
	Service float64 `yaml:"service" json:"service"`
}

// Process converts the descriptor into a fresh process record.
func (d Descriptor) Process() (*sim.Process, error) {
	service, err := serviceTicks(d.Service)
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", d.ID, err)
	}
	return sim.NewProcess(d.ID, d.Arrival, service), nil
}

// ToProcesses converts descriptors into process records and validates the
// resulting workload (non-empty, unique ids, sane times).
func ToProcesses(ds []Descriptor) ([]*sim.Process, error) {
	procs := make([]*sim.Process, 0, len(ds))
	for _, d := range ds {
		p, err := d.Process()
		if err != nil {
			return nil, err
		}
		procs = append(procs, p)
	}
	if err := sim.ValidateWorkload(procs); err != nil {
		return nil, err
	}
	return procs, nil
}

// FromProcesses returns the static descriptors of the given records.
func FromProcesses(procs []*sim.Process) []Descriptor {
	ds := make([]Descriptor, len(procs))
	for i, p := range procs {
		ds[i] = Descriptor{ID: p.ID(), Arrival: p.ArrivalTime(), Service: float64(p.ServiceTime())}
	}
	return ds
}

// serviceTicks converts a numeric service time into whole ticks.
// Fractional, non-finite or out-of-range values are rejected rather than truncated.
func serviceTicks(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: service time must be a finite number, got %v", sim.ErrMalformedWorkload, v)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: service time must be a whole number of ticks, got %v", sim.ErrMalformedWorkload, v)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: service time %v out of range", sim.ErrMalformedWorkload, v)
	}
	return int64(v), nil
}
