package trace

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// ProcessCount pairs a process ID with a count.
type ProcessCount struct {
	ProcessID int64
	Count     int
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions  int
	KindCounts      map[DecisionKind]int
	ContextSwitches int // dispatches that directly replaced another process in the same tick
	dispatches      *treemap.Map
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts: make(map[DecisionKind]int),
		dispatches: treemap.NewWith(utils.Int64Comparator),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	var prev *DecisionRecord
	for i := range st.Decisions {
		d := &st.Decisions[i]
		summary.KindCounts[d.Kind]++
		if d.Kind == KindDispatch {
			count := 0
			if v, ok := summary.dispatches.Get(d.ProcessID); ok {
				count = v.(int)
			}
			summary.dispatches.Put(d.ProcessID, count+1)
			if prev != nil && prev.Tick == d.Tick && prev.ProcessID != d.ProcessID && leavesCPU(prev.Kind) {
				summary.ContextSwitches++
			}
		}
		prev = d
	}
	return summary
}

func leavesCPU(kind DecisionKind) bool {
	return kind == KindPreempt || kind == KindComplete || kind == KindBlock
}

// DispatchesPerProcess returns dispatch counts ordered by process ID.
func (s *TraceSummary) DispatchesPerProcess() []ProcessCount {
	out := make([]ProcessCount, 0, s.dispatches.Size())
	it := s.dispatches.Iterator()
	for it.Next() {
		out = append(out, ProcessCount{ProcessID: it.Key().(int64), Count: it.Value().(int)})
	}
	return out
}
