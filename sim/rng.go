package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the seed of a reproducible run. The same key, configuration,
// policy and sequence of control calls always produce the same process history.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams used by the Simulator. Each one is seeded independently, so a
// change in how often one is consumed never shifts the others.
const (
	SubsystemWorkload = "workload" // priorities and bursts of generated processes
	SubsystemArrival  = "arrival"  // per-tick arrival coin
	SubsystemPolicy   = "policy"   // random selection
)

// PartitionedRNG hands out one *rand.Rand per named stream, created on first use.
// The workload stream is seeded with the key itself; every other stream with the
// key XOR the FNV-1a hash of its name.
//
// Not safe for concurrent use; the Simulator only touches it under its lock.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, subsystems: map[string]*rand.Rand{}}
}

// ForSubsystem returns the stream for name, creating it on first call.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	stream, ok := p.subsystems[name]
	if !ok {
		stream = rand.New(rand.NewSource(subsystemSeed(p.key, name)))
		p.subsystems[name] = stream
	}
	return stream
}

func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func subsystemSeed(key SimulationKey, name string) int64 {
	if name == SubsystemWorkload {
		return int64(key)
	}
	return int64(key) ^ fnv1a64(name)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
