package sim

import "math/rand"

// shortBurstLimit is the burst length at or below which processes never perform I/O.
const shortBurstLimit = 5

// GenerateProcessSpecs draws n process descriptions from the configuration envelope.
// Priority and burst are uniform on [1, max]; only bursts longer than
// shortBurstLimit receive an I/O episode, uniform on [1, MaxBurstIoTick].
// The I/O draw is taken for every process so the stream does not depend on burst outcomes.
func GenerateProcessSpecs(rng *rand.Rand, cfg ProcessConfig, n int) []ProcessSpec {
	specs := make([]ProcessSpec, 0, max(n, 0))
	for i := 0; i < n; i++ {
		priority := uniformTick(rng, cfg.MaxPriority)
		burst := uniformTick(rng, cfg.MaxBurstTick)
		ioBurst := uniformTick(rng, cfg.MaxBurstIoTick)
		if burst <= shortBurstLimit {
			ioBurst = 0
		}
		specs = append(specs, ProcessSpec{
			Priority:    priority,
			BurstTick:   burst,
			IoBurstTick: ioBurst,
		})
	}
	return specs
}

// ArrivalOccurs reports whether a new process arrives this tick.
func ArrivalOccurs(rng *rand.Rand, percent float64) bool {
	return rng.Float64() < percent/100
}

// uniformTick samples uniformly from [1, upper]. Degenerate bounds collapse to 1.
func uniformTick(rng *rand.Rand, upper int64) int64 {
	if upper <= 1 {
		return 1
	}
	return rng.Int63n(upper) + 1
}
