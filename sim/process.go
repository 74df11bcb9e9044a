// Defines the Process struct that models an individual synthetic workload in the simulation.
// Tracks arrival, CPU and I/O bursts, per-state tick counters, and response/completion ticks.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
//
//	Ready ──dispatch──▶ Running ──complete──▶ Completed
//	  ▲                  │  │
//	  └────preempt───────┘  └──block──▶ Blocked ──io done──▶ Ready
type ProcessState string

const (
	StateReady     ProcessState = "ready"
	StateRunning   ProcessState = "running"
	StateBlocked   ProcessState = "blocked"
	StateCompleted ProcessState = "completed"
)

// Process models a single process's lifecycle in the simulation.
// Only the Simulator mutates a Process; accessors hand out copies.
type Process struct {
	ID       int64        `json:"id"`       // Sequential identifier, assigned at creation
	Priority int64        `json:"priority"` // >= 1; lower value = more urgent
	State    ProcessState `json:"state"`    // ready, running, blocked, completed

	ArrivalTick   int64 `json:"arrival_tick"`   // Tick at creation
	BurstTick     int64 `json:"burst_tick"`     // Total CPU ticks required
	RemainingTick int64 `json:"remaining_tick"` // CPU ticks still needed, never negative

	IoBurstTick     int64 `json:"io_burst_tick"`     // Total ticks of the I/O episode (0 for short processes)
	RemainingIoTick int64 `json:"remaining_io_tick"` // Ticks of the I/O episode still pending

	WaitingTick    int64 `json:"waiting_tick"`    // Ticks spent Ready
	BlockingTick   int64 `json:"blocking_tick"`   // Ticks spent Blocked
	TurnaroundTick int64 `json:"turnaround_tick"` // Ticks spent in any non-completed state

	ResponseTick   *int64 `json:"response_tick"`   // Tick of first dispatch; nil until then
	CompletionTick *int64 `json:"completion_tick"` // Tick of completion; nil until then

	ExecutionCount int64 `json:"execution_count"` // Number of dispatches into Running
}

// ProcessSpec describes a process to insert explicitly, bypassing the random generator.
type ProcessSpec struct {
	Priority    int64 `yaml:"priority"`
	BurstTick   int64 `yaml:"burst_tick"`
	IoBurstTick int64 `yaml:"io_burst_tick"`
}

func newProcess(id, clock int64, spec ProcessSpec) *Process {
	return &Process{
		ID:              id,
		Priority:        spec.Priority,
		State:           StateReady,
		ArrivalTick:     clock,
		BurstTick:       spec.BurstTick,
		RemainingTick:   spec.BurstTick,
		IoBurstTick:     spec.IoBurstTick,
		RemainingIoTick: spec.IoBurstTick,
	}
}

// ExecutedTick returns the CPU ticks consumed so far.
func (p *Process) ExecutedTick() int64 {
	return p.BurstTick - p.RemainingTick
}

// IOBound reports whether the process still has an I/O episode ahead of it.
func (p *Process) IOBound() bool {
	return p.RemainingIoTick > 0
}

// ReachedIOPoint reports whether a running process has consumed at least half of its burst.
// Compared as 2*remaining <= burst so odd bursts are not truncated.
func (p *Process) ReachedIOPoint() bool {
	return 2*p.RemainingTick <= p.BurstTick
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Priority: %d, Remaining: %d/%d, ArrivalTick: %d)",
		p.ID, p.State, p.Priority, p.RemainingTick, p.BurstTick, p.ArrivalTick)
}

func tickPtr(v int64) *int64 { return &v }
