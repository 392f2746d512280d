// Package testutil provides shared test infrastructure for the simulator:
// the golden dataset of hand-checked schedules and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one workload with the expected outcome of every discipline.
type GoldenTestCase struct {
	Name       string                   `json:"name"`
	Processes  [][3]int64               `json:"processes"` // id, arrival, service
	SwitchTime int64                    `json:"switch_time"`
	Quantum    int64                    `json:"quantum"`
	Expected   map[string]GoldenMetrics `json:"expected"` // keyed by discipline name
}

// GoldenMetrics represents the expected metrics of one discipline.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	TotalTime       int64   `json:"total_time"`
	TotalSwitchTime int64   `json:"total_switch_time"`
	IdleTime        int64   `json:"idle_time"`
	FinishOrder     []int64 `json:"finish_order"`

	// Derived floating-point metrics
	AverageWaitingTime    float64 `json:"average_waiting_time"`
	AverageTurnaroundTime float64 `json:"average_turnaround_time"`
	AverageResponseTime   float64 `json:"average_response_time"`
	WaitingTimeP90        float64 `json:"waiting_time_p90"`
	CPUEfficiency         float64 `json:"cpu_efficiency"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
