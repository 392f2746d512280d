package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/report"
)

const pairBody = `{"processes":[{"id":1,"arrival":0,"service":5},{"id":2,"arrival":0,"service":3}]}`

func post(t *testing.T, path, body string) (*http.Response, []byte) {
	t.Helper()
	app := NewApp(sim.DefaultConfig())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeViews(t *testing.T, data []byte) []report.DisciplineView {
	t.Helper()
	var views []report.DisciplineView
	require.NoError(t, json.Unmarshal(data, &views))
	return views
}

func TestFirstComeFirstServe_ReturnsMetrics(t *testing.T) {
	// GIVEN two processes arriving together with the default switch cost of 2
	// WHEN they are posted to the FCFS endpoint
	resp, data := post(t, "/api/v1/fcfs", pairBody)

	// THEN one report comes back with the FCFS totals
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	views := decodeViews(t, data)
	require.Len(t, views, 1)
	assert.Equal(t, sim.NameFCFS, views[0].Discipline)
	assert.Equal(t, int64(10), views[0].Metrics.TotalTime)
	assert.InDelta(t, 3.5, views[0].Metrics.AverageWaitingTime, 1e-9)
	assert.InDelta(t, 80.0, views[0].Metrics.CPUEfficiency, 1e-9)
	assert.Equal(t, []int64{1, 2}, views[0].FinishOrder)
}

func TestRoundRobin_RequestOverridesQuantumAndSwitch(t *testing.T) {
	// GIVEN a quantum of 2 and free context switches in the request body
	body := `{"processes":[{"id":1,"arrival":0,"service":5},{"id":2,"arrival":0,"service":3}],"quantum":2,"switch_time":0}`

	// WHEN posted to the RR endpoint
	resp, data := post(t, "/api/v1/rr", body)

	// THEN the slices interleave and P2 finishes first
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	views := decodeViews(t, data)
	require.Len(t, views, 1)
	assert.Equal(t, sim.NameRoundRobin, views[0].Discipline)
	assert.Equal(t, []int64{2, 1}, views[0].FinishOrder)
	assert.Equal(t, int64(8), views[0].Metrics.TotalTime)
	assert.Equal(t, int64(0), views[0].Metrics.TotalSwitchTime)
}

func TestAllAlgorithms_RunsBothInOrder(t *testing.T) {
	resp, data := post(t, "/api/v1/all", pairBody)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	views := decodeViews(t, data)
	require.Len(t, views, 2)
	assert.Equal(t, sim.NameFCFS, views[0].Discipline)
	assert.Equal(t, sim.NameRoundRobin, views[1].Discipline)
}

func TestSchedule_DomainErrorsAreBadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		want string
	}{
		{"empty workload", "/api/v1/fcfs", `{"processes":[]}`, "empty workload"},
		{"zero quantum", "/api/v1/rr", `{"processes":[{"id":1,"arrival":0,"service":5}],"quantum":0}`, "quantum"},
		{"fractional service", "/api/v1/fcfs", `{"processes":[{"id":1,"arrival":0,"service":2.5}]}`, "service"},
		{"duplicate id", "/api/v1/all", `{"processes":[{"id":1,"arrival":0,"service":1},{"id":1,"arrival":2,"service":1}]}`, "duplicate"},
		{"not json", "/api/v1/fcfs", `processes`, "invalid request format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := post(t, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Contains(t, body["error"], tc.want)
		})
	}
}

func TestHealth(t *testing.T) {
	app := NewApp(sim.DefaultConfig())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
