package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents   int
	Dispatches    int
	Preemptions   int
	Completions   int
	IdleGaps      int
	Switches      int
	MaxReadyDepth int
	KindCounts    map[EventKind]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts: make(map[EventKind]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, ev := range st.Events {
		summary.KindCounts[ev.Kind]++
		if len(ev.Ready) > summary.MaxReadyDepth {
			summary.MaxReadyDepth = len(ev.Ready)
		}
	}
	summary.Dispatches = summary.KindCounts[EventDispatch]
	summary.Preemptions = summary.KindCounts[EventPreempt]
	summary.Completions = summary.KindCounts[EventComplete]
	summary.IdleGaps = summary.KindCounts[EventIdle]
	summary.Switches = summary.KindCounts[EventSwitch]

	return summary
}
