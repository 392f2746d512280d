package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Properties that must hold for any valid workload, checked over seeded
// random workloads for both disciplines.

func TestSchedulers_TimeAccounting_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		procs := randomWorkload(rng, 1+rng.Intn(12))
		cfg := DefaultConfig()
		cfg.Quantum = 1 + rng.Int63n(40)

		for _, name := range ValidSchedulerNames() {
			res, err := NewScheduler(name, cfg).Schedule(procs)
			require.NoError(t, err, "trial %d %s", trial, name)
			m, err := res.Metrics()
			require.NoError(t, err, "trial %d %s", trial, name)

			var sumWait, sumService, sumTurnaround int64
			for _, p := range res.Processes {
				assert.True(t, p.Finished())
				assert.GreaterOrEqual(t, p.TurnaroundTime(), p.ServiceTime())
				assert.GreaterOrEqual(t, p.FinishTime(), p.ArrivalTime()+p.ServiceTime())
				assert.GreaterOrEqual(t, p.FirstDispatchTime(), p.ArrivalTime())
				sumWait += p.WaitingTime()
				sumService += p.ServiceTime()
				sumTurnaround += p.TurnaroundTime()
			}
			assert.Equal(t, sumTurnaround, sumWait+sumService, "trial %d %s", trial, name)

			// the clock only moves by service, switch overhead or idle gaps
			assert.Equal(t, m.TotalTime, sumService+res.TotalSwitchTime+res.IdleTime, "trial %d %s", trial, name)

			var sliced int64
			for _, ts := range res.Timeline {
				assert.Less(t, ts.Start, ts.Stop)
				sliced += ts.Stop - ts.Start
			}
			assert.Equal(t, sumService, sliced)
		}
	}
}

func TestRoundRobin_SlicesNeverExceedQuantum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		cfg := DefaultConfig()
		cfg.Quantum = 1 + rng.Int63n(15)
		res, err := NewRoundRobinScheduler(cfg).Schedule(randomWorkload(rng, 8))
		require.NoError(t, err)

		for i, ts := range res.Timeline {
			assert.LessOrEqual(t, ts.Stop-ts.Start, cfg.Quantum)
			if i > 0 {
				assert.GreaterOrEqual(t, ts.Start, res.Timeline[i-1].Stop, "slices must not overlap")
			}
		}
	}
}

func TestFCFS_DispatchOrderIsArrivalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	res, err := NewFCFSScheduler(DefaultConfig()).Schedule(randomWorkload(rng, 30))
	require.NoError(t, err)

	for i := 1; i < len(res.Timeline); i++ {
		prev := byID(t, res)[res.Timeline[i-1].ProcessID]
		cur := byID(t, res)[res.Timeline[i].ProcessID]
		assert.LessOrEqual(t, prev.ArrivalTime(), cur.ArrivalTime())
		assert.Equal(t, cur.ExecutionTime(), res.Timeline[i].Start)
	}
}

func TestSimulator_NewSimulator_ResetsRecords(t *testing.T) {
	// GIVEN records left finished by an earlier pass
	procs := workload([3]int64{1, 0, 3})
	_, err := NewFCFSScheduler(DefaultConfig()).Schedule(procs)
	require.NoError(t, err)
	require.True(t, procs[0].Finished())

	// WHEN a new pass context is built
	s := newSimulator(NameRoundRobin, procs, DefaultConfig())

	// THEN the records are back to their pre-run state and the context is fresh
	assert.False(t, procs[0].Finished())
	assert.Equal(t, int64(0), s.Clock)
	assert.Zero(t, s.ReadyQ.Len())
	assert.Zero(t, s.FinishedQ.Len())
	assert.Nil(t, s.Trace)
}
