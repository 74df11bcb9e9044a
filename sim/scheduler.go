package sim

import (
	"math/rand"
	"sort"
)

// QueueOrdering reorders a snapshot of the ready queue so the best candidate comes first.
// Implementations sort the slice in-place using sort.SliceStable, so ties keep
// ready-queue order (creation order).
type QueueOrdering interface {
	OrderQueue(ready []*Process)
}

// ArrivalOrdering ranks by arrival tick (ascending). Used by first-come-first-served.
type ArrivalOrdering struct{}

func (ArrivalOrdering) OrderQueue(ready []*Process) {
	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].ArrivalTick < ready[j].ArrivalTick
	})
}

// BurstOrdering ranks by total burst (ascending). Used by shortest-job-first.
// Warning: long processes can starve under sustained arrivals.
type BurstOrdering struct{}

func (BurstOrdering) OrderQueue(ready []*Process) {
	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].BurstTick < ready[j].BurstTick
	})
}

// PriorityOrdering ranks by priority number (ascending: 1 is most urgent).
type PriorityOrdering struct{}

func (PriorityOrdering) OrderQueue(ready []*Process) {
	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].Priority < ready[j].Priority
	})
}

// RemainingOrdering ranks by remaining CPU ticks (ascending). Used by shortest-remaining-time-first.
type RemainingOrdering struct{}

func (RemainingOrdering) OrderQueue(ready []*Process) {
	sort.SliceStable(ready, func(i, j int) bool {
		return ready[i].RemainingTick < ready[j].RemainingTick
	})
}

// LeastServicedOrdering ranks by execution count, then arrival tick (both ascending).
// Used by round-robin so the process dispatched the fewest times goes next.
type LeastServicedOrdering struct{}

func (LeastServicedOrdering) OrderQueue(ready []*Process) {
	sort.SliceStable(ready, func(i, j int) bool {
		if ready[i].ExecutionCount != ready[j].ExecutionCount {
			return ready[i].ExecutionCount < ready[j].ExecutionCount
		}
		return ready[i].ArrivalTick < ready[j].ArrivalTick
	})
}

// RandomOrdering moves one uniformly chosen process to the front.
// The remaining processes keep their relative order.
type RandomOrdering struct {
	Rng *rand.Rand
}

func (r RandomOrdering) OrderQueue(ready []*Process) {
	if len(ready) < 2 {
		return
	}
	pick := r.Rng.Intn(len(ready))
	chosen := ready[pick]
	copy(ready[1:pick+1], ready[:pick])
	ready[0] = chosen
}
