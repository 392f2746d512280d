package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible synthetic workload. Two generations
// with the same key and generator settings produce identical processes.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemArrival draws inter-arrival gaps. It uses the master seed directly.
	SubsystemArrival = "arrival"

	// SubsystemService draws service times.
	SubsystemService = "service"
)

// PartitionedRNG hands out one deterministically seeded *rand.Rand per
// subsystem, so drawing more service times never shifts the arrival stream.
//
// Derivation:
//   - SubsystemArrival: masterSeed
//   - everything else: masterSeed XOR fnv1a64(name)
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached RNG for name, creating it on first use.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key)
	if name != SubsystemArrival {
		derivedSeed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
