// Package trace provides decision-trace recording for scheduling policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DecisionKind names one CPU scheduling decision or lifecycle transition.
type DecisionKind string

const (
	KindArrival  DecisionKind = "arrival"  // process created
	KindDispatch DecisionKind = "dispatch" // Ready → Running
	KindPreempt  DecisionKind = "preempt"  // Running → Ready
	KindBlock    DecisionKind = "block"    // Running → Blocked
	KindUnblock  DecisionKind = "unblock"  // Blocked → Ready
	KindComplete DecisionKind = "complete" // Running → Completed
	KindIdle     DecisionKind = "idle"     // CPU left without a process
)

// DecisionRecord captures a single decision.
type DecisionRecord struct {
	RunID     string
	Tick      int64
	Kind      DecisionKind
	ProcessID int64 // 0 for idle records
	Policy    string
	Reason    string
}
