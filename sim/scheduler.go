package sim

import (
	"fmt"
	"sort"

	"github.com/schedsim/schedsim/sim/trace"
)

const (
	// DefaultSwitchTime is the context-switch cost charged between two jobs.
	DefaultSwitchTime int64 = 2
	// DefaultQuantum is the round-robin time slice used when none is configured.
	DefaultQuantum int64 = 50
)

// Config groups the knobs shared by all scheduling disciplines.
type Config struct {
	SwitchTime int64            // fixed context-switch cost in ticks (>= 0)
	Quantum    int64            // round-robin time slice in ticks (> 0); ignored by FCFS
	Trace      trace.TraceLevel // "none" (default) or "events"
}

// DefaultConfig returns the switch cost and quantum used when none are given.
func DefaultConfig() Config {
	return Config{
		SwitchTime: DefaultSwitchTime,
		Quantum:    DefaultQuantum,
		Trace:      trace.TraceLevelNone,
	}
}

// Scheduler runs one full pass of a scheduling discipline over a workload.
// Schedule resets every record before it starts and leaves all of them
// finished on success. The caller's slice order is not modified.
type Scheduler interface {
	Name() string
	Schedule(procs []*Process) (*Result, error)
}

// Scheduler names accepted by NewScheduler.
const (
	NameFCFS       = "fcfs"
	NameRoundRobin = "rr"
)

// validSchedulers maps accepted names (including aliases) to canonical names.
var validSchedulers = map[string]string{
	NameFCFS:       NameFCFS,
	NameRoundRobin: NameRoundRobin,
	"round-robin":  NameRoundRobin,
}

// IsValidScheduler returns true if name is a recognized scheduler name.
func IsValidScheduler(name string) bool {
	_, ok := validSchedulers[name]
	return ok
}

// ValidSchedulerNames returns the canonical scheduler names in sorted order.
func ValidSchedulerNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(validSchedulers))
	for _, canonical := range validSchedulers {
		if !seen[canonical] {
			seen[canonical] = true
			names = append(names, canonical)
		}
	}
	sort.Strings(names)
	return names
}

// NewScheduler creates a Scheduler by name.
// Valid names: "fcfs", "rr" (alias "round-robin").
// Panics on unrecognized names; check with IsValidScheduler first.
func NewScheduler(name string, cfg Config) Scheduler {
	canonical, ok := validSchedulers[name]
	if !ok {
		panic(fmt.Sprintf("unknown scheduler %q", name))
	}
	switch canonical {
	case NameFCFS:
		return NewFCFSScheduler(cfg)
	case NameRoundRobin:
		return NewRoundRobinScheduler(cfg)
	default:
		panic(fmt.Sprintf("unhandled scheduler %q", name))
	}
}

// checkPass validates the preconditions shared by every discipline.
func checkPass(procs []*Process, cfg Config) error {
	if len(procs) == 0 {
		return ErrEmptyWorkload
	}
	if cfg.SwitchTime < 0 {
		return fmt.Errorf("%w: switch time %d is negative", ErrMalformedWorkload, cfg.SwitchTime)
	}
	return nil
}
