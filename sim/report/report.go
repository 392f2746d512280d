package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

// Format names an output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var validFormats = map[Format]bool{
	FormatText:  true,
	FormatTable: true,
	FormatJSON:  true,
	FormatYAML:  true,
}

// IsValidFormat returns true if name is a recognized output format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// Write renders reports in the given format.
func Write(w io.Writer, format Format, reports []*sim.Report) error {
	switch format {
	case FormatText:
		return WriteText(w, reports)
	case FormatTable:
		for _, r := range reports {
			if err := WriteTable(w, r); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		return WriteJSON(w, reports)
	case FormatYAML:
		return WriteYAML(w, reports)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteText prints, per discipline, the aggregate metrics followed by every
// process's service, waiting, finish and turnaround time.
func WriteText(w io.Writer, reports []*sim.Report) error {
	var sb strings.Builder
	for _, r := range reports {
		m := r.Metrics
		fmt.Fprintf(&sb, "%s:\n", r.Result.Title)
		fmt.Fprintf(&sb, "Total Time: %d time units\n", m.TotalTime)
		fmt.Fprintf(&sb, "Average Waiting Time: %.2f time units\n", m.AverageWaitingTime)
		fmt.Fprintf(&sb, "CPU Efficiency: %.2f%%\n\n", m.CPUEfficiency)
		for _, p := range r.Result.Processes {
			fmt.Fprintf(&sb, "Process %d:\n", p.ID())
			fmt.Fprintf(&sb, "Service time = %d\n", p.ServiceTime())
			fmt.Fprintf(&sb, "Waiting time = %d\n", p.WaitingTime())
			fmt.Fprintf(&sb, "Finish time = %d\n", p.FinishTime())
			fmt.Fprintf(&sb, "Turnaround time = %d\n\n", p.TurnaroundTime())
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteTable prints a title, a Gantt chart and a per-process table with
// averages in the footer.
func WriteTable(w io.Writer, r *sim.Report) error {
	if err := writeTitle(w, r.Result.Title); err != nil {
		return err
	}
	if err := WriteGantt(w, r.Result.Timeline); err != nil {
		return err
	}

	m := r.Metrics
	rows := make([][]string, 0, len(r.Result.Processes))
	for _, p := range r.Result.Processes {
		rows = append(rows, []string{
			fmt.Sprint(p.ID()),
			fmt.Sprint(p.ArrivalTime()),
			fmt.Sprint(p.ServiceTime()),
			fmt.Sprint(p.FirstDispatchTime()),
			fmt.Sprint(p.WaitingTime()),
			fmt.Sprint(p.TurnaroundTime()),
			fmt.Sprint(p.FinishTime()),
		})
	}

	if _, err := fmt.Fprintln(w, "Schedule table"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Service", "Start", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", m.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", m.AverageTurnaroundTime),
		fmt.Sprintf("Total\n%d", m.TotalTime)})
	table.Render()

	_, err := fmt.Fprintf(w, "Switch overhead: %d  Idle: %d  CPU efficiency: %.2f%%\n\n",
		m.TotalSwitchTime, m.IdleTime, m.CPUEfficiency)
	return err
}

func writeTitle(w io.Writer, title string) error {
	rule := strings.Repeat("-", len(title)+4)
	_, err := fmt.Fprintf(w, "%s\n  %s\n%s\n", rule, title, rule)
	return err
}

// WriteGantt prints the executed slices as a one-line chart with start times
// underneath. Gaps between slices are switch overhead or idle time.
func WriteGantt(w io.Writer, timeline []sim.TimeSlice) error {
	var top, bottom strings.Builder
	top.WriteString("|")
	for i, ts := range timeline {
		pid := fmt.Sprintf("P%d", ts.ProcessID)
		padding := strings.Repeat(" ", max(0, (8-len(pid))/2))
		top.WriteString(padding + pid + padding + "|")
		bottom.WriteString(fmt.Sprint(ts.Start) + "\t")
		if i == len(timeline)-1 {
			bottom.WriteString(fmt.Sprint(ts.Stop))
		}
	}
	_, err := fmt.Fprintf(w, "Gantt schedule\n%s\n%s\n\n", top.String(), bottom.String())
	return err
}

// WriteTrace prints the queue snapshot recorded at every event of a pass.
// Prints nothing when the pass ran without tracing.
func WriteTrace(w io.Writer, res *sim.Result) error {
	if res.Trace == nil {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Event trace: %s\n", res.Title)
	for _, ev := range res.Trace.Events {
		fmt.Fprintf(&sb, "[EVENT] t=%d %s P%d\n", ev.Clock, ev.Kind, ev.ProcessID)
		fmt.Fprintf(&sb, "  Ready Queue: %s\n", formatIDs(ev.Ready))
		fmt.Fprintf(&sb, "  Finish Queue: %s\n", formatIDs(ev.Finished))
	}
	summary := trace.Summarize(res.Trace)
	fmt.Fprintf(&sb, "%d events: %d dispatches, %d preemptions, %d switches, %d idle gaps, max ready depth %d\n\n",
		summary.TotalEvents, summary.Dispatches, summary.Preemptions, summary.Switches, summary.IdleGaps, summary.MaxReadyDepth)
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("P%d", id)
	}
	return strings.Join(parts, " ")
}

// WriteJSON writes the reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []*sim.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewViews(reports))
}

// WriteYAML writes the reports as a YAML sequence.
func WriteYAML(w io.Writer, reports []*sim.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewViews(reports)); err != nil {
		return err
	}
	return encoder.Close()
}
