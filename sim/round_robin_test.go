package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim/trace"
)

func rrConfig(quantum int64) Config {
	cfg := DefaultConfig()
	cfg.Quantum = quantum
	return cfg
}

func TestRoundRobin_ShortJobNotStarved(t *testing.T) {
	// GIVEN Q=4, a long job (0,10) and a short job (0,4)
	procs := workload([3]int64{1, 0, 10}, [3]int64{2, 0, 4})

	res, err := NewRoundRobinScheduler(rrConfig(4)).Schedule(procs)
	require.NoError(t, err)

	// THEN process 2 finishes after one quantum of process 1 plus one switch
	p := byID(t, res)
	assert.Equal(t, int64(10), p[2].FinishTime())
	assert.Equal(t, int64(6), p[2].WaitingTime())
	assert.Equal(t, int64(6), p[2].FirstDispatchTime())
	// process 1 resumes after a second switch and keeps the CPU for its last two slices
	assert.Equal(t, int64(18), p[1].FinishTime())
	assert.Equal(t, int64(8), p[1].WaitingTime())
	assert.Equal(t, 3, p[1].Dispatches())
	assert.Equal(t, int64(4), res.TotalSwitchTime)
	assert.Equal(t, []TimeSlice{{1, 0, 4}, {2, 6, 10}, {1, 12, 16}, {1, 16, 18}}, res.Timeline)
	assert.Equal(t, []int64{2, 1}, res.FinishOrder)
}

func TestRoundRobin_ArrivalAdmittedBeforeRequeue(t *testing.T) {
	// GIVEN process 2 arriving exactly when process 1's quantum expires
	procs := workload([3]int64{1, 0, 6}, [3]int64{2, 3, 2})

	res, err := NewRoundRobinScheduler(rrConfig(3)).Schedule(procs)
	require.NoError(t, err)

	// THEN the new arrival runs before the preempted process
	p := byID(t, res)
	assert.Equal(t, []TimeSlice{{1, 0, 3}, {2, 5, 7}, {1, 9, 12}}, res.Timeline)
	assert.Equal(t, int64(7), p[2].FinishTime())
	assert.Equal(t, int64(2), p[2].WaitingTime())
	assert.Equal(t, int64(12), p[1].FinishTime())
	assert.Equal(t, int64(6), p[1].WaitingTime())
}

func TestRoundRobin_ArrivalDuringSlice_QueuedAheadOfPreempted(t *testing.T) {
	// GIVEN process 3 arriving in the middle of process 2's slice
	procs := workload([3]int64{1, 0, 4}, [3]int64{2, 0, 4}, [3]int64{3, 5, 1})

	res, err := NewRoundRobinScheduler(rrConfig(2)).Schedule(procs)
	require.NoError(t, err)

	// P1 0-2, sw ->4, P2 4-6 (P3 admitted at 6 before P2 requeued), sw ->8,
	// P1 8-10 done, sw ->12, P3 12-13 done, sw ->15, P2 15-17 done.
	assert.Equal(t, []TimeSlice{{1, 0, 2}, {2, 4, 6}, {1, 8, 10}, {3, 12, 13}, {2, 15, 17}}, res.Timeline)
	assert.Equal(t, []int64{1, 3, 2}, res.FinishOrder)
	assert.Equal(t, int64(8), res.TotalSwitchTime)
}

func TestRoundRobin_SingleProcess_NoSwitchCost(t *testing.T) {
	// GIVEN one process longer than the quantum
	procs := workload([3]int64{7, 5, 20})

	res, err := NewRoundRobinScheduler(rrConfig(4)).Schedule(procs)
	require.NoError(t, err)

	// THEN it runs back to back with no switch overhead
	p := procs[0]
	assert.Equal(t, int64(25), p.FinishTime())
	assert.Equal(t, int64(0), p.WaitingTime())
	assert.Equal(t, int64(20), p.TurnaroundTime())
	assert.Zero(t, res.TotalSwitchTime)
	assert.Equal(t, 5, p.Dispatches())

	m, err := res.Metrics()
	require.NoError(t, err)
	assert.InDelta(t, 100.0, m.CPUEfficiency, 1e-9)
}

func TestRoundRobin_IdleGap_JumpsToNextArrival(t *testing.T) {
	// GIVEN a gap between the first job finishing and the next arriving
	procs := workload([3]int64{1, 0, 3}, [3]int64{2, 10, 4})

	res, err := NewRoundRobinScheduler(rrConfig(2)).Schedule(procs)
	require.NoError(t, err)

	p := byID(t, res)
	assert.Equal(t, int64(3), p[1].FinishTime())
	assert.Equal(t, int64(14), p[2].FinishTime())
	assert.Equal(t, int64(0), p[2].WaitingTime())
	assert.Zero(t, res.TotalSwitchTime, "no switch when the CPU goes idle or a job resumes itself")
	assert.Equal(t, int64(7), res.IdleTime)
}

func TestRoundRobin_QuantumLargerThanJobs_BehavesLikeFCFS(t *testing.T) {
	procs := workload([3]int64{1, 0, 5}, [3]int64{2, 0, 3})

	rr, err := NewRoundRobinScheduler(rrConfig(50)).Schedule(procs)
	require.NoError(t, err)
	rrFinish := map[int64]int64{}
	for _, p := range rr.Processes {
		rrFinish[p.ID()] = p.FinishTime()
	}

	fcfs, err := NewFCFSScheduler(DefaultConfig()).Schedule(procs)
	require.NoError(t, err)
	for _, p := range fcfs.Processes {
		assert.Equal(t, p.FinishTime(), rrFinish[p.ID()], "process %d", p.ID())
	}
}

func TestRoundRobin_InvalidQuantum(t *testing.T) {
	for _, q := range []int64{0, -3} {
		_, err := NewRoundRobinScheduler(rrConfig(q)).Schedule(workload([3]int64{1, 0, 1}))
		assert.ErrorIs(t, err, ErrInvalidQuantum, "quantum %d", q)
	}
}

func TestRoundRobin_EmptyWorkload(t *testing.T) {
	_, err := NewRoundRobinScheduler(rrConfig(4)).Schedule([]*Process{})
	assert.ErrorIs(t, err, ErrEmptyWorkload)
}

func TestRoundRobin_Trace_RecordsPreemptions(t *testing.T) {
	cfg := rrConfig(4)
	cfg.Trace = trace.TraceLevelEvents
	procs := workload([3]int64{1, 0, 10}, [3]int64{2, 0, 4})

	res, err := NewRoundRobinScheduler(cfg).Schedule(procs)
	require.NoError(t, err)

	summary := trace.Summarize(res.Trace)
	assert.Equal(t, 4, summary.Dispatches)
	assert.Equal(t, 2, summary.Preemptions)
	assert.Equal(t, 2, summary.Completions)
	assert.Equal(t, 2, summary.Switches)
	assert.Equal(t, 2, summary.MaxReadyDepth)

	first := res.Trace.Events[0]
	assert.Equal(t, trace.EventDispatch, first.Kind)
	assert.Equal(t, int64(1), first.ProcessID)
	assert.Equal(t, []int64{2}, first.Ready)
}

func TestRoundRobin_Rerun_IsIdempotent(t *testing.T) {
	procs := workload([3]int64{1, 3, 80}, [3]int64{2, 0, 55}, [3]int64{3, 4, 12}, [3]int64{4, 400, 60})
	s := NewRoundRobinScheduler(rrConfig(10))

	first, err := s.Schedule(procs)
	require.NoError(t, err)
	m1, err := first.Metrics()
	require.NoError(t, err)
	timeline := append([]TimeSlice(nil), first.Timeline...)

	second, err := s.Schedule(procs)
	require.NoError(t, err)
	m2, err := second.Metrics()
	require.NoError(t, err)

	assert.Equal(t, m1, m2)
	assert.Equal(t, timeline, second.Timeline)
}
