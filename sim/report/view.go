// Package report renders finished scheduler passes for people (text, table,
// Gantt chart, event trace) and for machines (JSON, YAML).
package report

import (
	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// ProcessView is the per-process outcome of a pass.
type ProcessView struct {
	ID            int64 `json:"id" yaml:"id"`
	Arrival       int64 `json:"arrival" yaml:"arrival"`
	Service       int64 `json:"service" yaml:"service"`
	FirstDispatch int64 `json:"first_dispatch" yaml:"first_dispatch"`
	Finish        int64 `json:"finish" yaml:"finish"`
	Waiting       int64 `json:"waiting" yaml:"waiting"`
	Turnaround    int64 `json:"turnaround" yaml:"turnaround"`
	Dispatches    int   `json:"dispatches" yaml:"dispatches"`
}

// DisciplineView is the serializable form of one sim.Report.
type DisciplineView struct {
	Discipline  string              `json:"discipline" yaml:"discipline"`
	Title       string              `json:"title" yaml:"title"`
	Metrics     *sim.Metrics        `json:"metrics" yaml:"metrics"`
	Processes   []ProcessView       `json:"processes" yaml:"processes"`
	FinishOrder []int64             `json:"finish_order" yaml:"finish_order"`
	Timeline    []sim.TimeSlice     `json:"timeline" yaml:"timeline"`
	Trace       []trace.EventRecord `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// NewView flattens a report into its serializable form.
func NewView(r *sim.Report) DisciplineView {
	res := r.Result
	view := DisciplineView{
		Discipline:  res.Discipline,
		Title:       res.Title,
		Metrics:     r.Metrics,
		Processes:   make([]ProcessView, len(res.Processes)),
		FinishOrder: res.FinishOrder,
		Timeline:    res.Timeline,
	}
	for i, p := range res.Processes {
		view.Processes[i] = ProcessView{
			ID:            p.ID(),
			Arrival:       p.ArrivalTime(),
			Service:       p.ServiceTime(),
			FirstDispatch: p.FirstDispatchTime(),
			Finish:        p.FinishTime(),
			Waiting:       p.WaitingTime(),
			Turnaround:    p.TurnaroundTime(),
			Dispatches:    p.Dispatches(),
		}
	}
	if res.Trace != nil {
		view.Trace = res.Trace.Events
	}
	return view
}

// NewViews flattens every report.
func NewViews(reports []*sim.Report) []DisciplineView {
	views := make([]DisciplineView, len(reports))
	for i, r := range reports {
		views[i] = NewView(r)
	}
	return views
}
