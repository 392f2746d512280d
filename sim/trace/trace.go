package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures a ready/finished queue snapshot at every scheduling event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects event records during one scheduler pass.
type SimulationTrace struct {
	Discipline string
	Events     []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(discipline string) *SimulationTrace {
	return &SimulationTrace{
		Discipline: discipline,
		Events:     make([]EventRecord, 0),
	}
}

// RecordEvent appends an event record. Safe on a nil trace.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	if st == nil {
		return
	}
	st.Events = append(st.Events, record)
}
