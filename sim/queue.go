// Implements ProcessQueue, the read-only ordered views the Simulator derives
// from its process collection after every mutation.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// ProcessQueue is an ordered view over the processes in one lifecycle state.
// It is rebuilt from the authoritative process collection, never edited in place
// by the Simulator, so it cannot drift from the source of truth.
type ProcessQueue struct {
	queue []*Process
}

// filterQueue builds a view of the processes in the given state, preserving creation order.
func filterQueue(processes []*Process, state ProcessState) *ProcessQueue {
	view := &ProcessQueue{}
	for _, p := range processes {
		if p.State == state {
			view.queue = append(view.queue, p)
		}
	}
	return view
}

// completedQueue builds the completed view ordered by completion tick.
// At most one process completes per tick, so the order is total.
func completedQueue(processes []*Process) *ProcessQueue {
	view := filterQueue(processes, StateCompleted)
	sort.SliceStable(view.queue, func(i, j int) bool {
		return *view.queue[i].CompletionTick < *view.queue[j].CompletionTick
	})
	return view
}

func (pq *ProcessQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range pq.queue {
		sb.WriteString(fmt.Sprint(*p))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the view.
func (pq *ProcessQueue) Len() int {
	return len(pq.queue)
}

// Snapshot returns a fresh slice over the view's processes.
// Callers may reorder the slice freely; the view itself is unaffected.
func (pq *ProcessQueue) Snapshot() []*Process {
	out := make([]*Process, len(pq.queue))
	copy(out, pq.queue)
	return out
}

// Values returns copies of the processes in view order.
func (pq *ProcessQueue) Values() []Process {
	out := make([]Process, len(pq.queue))
	for i, p := range pq.queue {
		out[i] = *p
	}
	return out
}
