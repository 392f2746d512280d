package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// workload builds processes from (id, arrival, service) triples.
func workload(triples ...[3]int64) []*Process {
	procs := make([]*Process, len(triples))
	for i, t := range triples {
		procs[i] = NewProcess(t[0], t[1], t[2])
	}
	return procs
}

// byID indexes a result's processes by process number.
func byID(t *testing.T, res *Result) map[int64]*Process {
	t.Helper()
	m := make(map[int64]*Process, len(res.Processes))
	for _, p := range res.Processes {
		m[p.ID()] = p
	}
	require.Len(t, m, len(res.Processes), "duplicate process numbers in result")
	return m
}

// randomWorkload generates n processes with sparse arrivals so that both
// contended and idle stretches occur.
func randomWorkload(rng *rand.Rand, n int) []*Process {
	procs := make([]*Process, n)
	for i := range procs {
		procs[i] = NewProcess(int64(i+1), rng.Int63n(200), 1+rng.Int63n(120))
	}
	return procs
}

func processIDs(procs []*Process) []int64 {
	ids := make([]int64, len(procs))
	for i, p := range procs {
		ids[i] = p.ID()
	}
	return ids
}
