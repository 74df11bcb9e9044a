package sim

import "fmt"

// RoundRobin rotates the CPU every quantum, favoring the process dispatched the
// fewest times (ties by earliest arrival).
//
// The quantum window is measured against cumulative execution: a process keeps the
// CPU while ExecutedTick() < quantum × ExecutionCount. When the window closes and
// nobody is ready, the process keeps running, unless LegacyRoundRobin is set, in
// which case it is completed even with ticks left.
type RoundRobin struct{}

func (RoundRobin) Name() string { return PolicyRoundRobin }

func (RoundRobin) Decide(cpu *CPU) {
	ordering := LeastServicedOrdering{}
	current := cpu.Current()
	if current == nil {
		cpu.DispatchNext(ordering, "cpu idle")
		return
	}
	if cpu.ShouldBlock() {
		cpu.Block("io point reached")
		cpu.DispatchNext(ordering, "previous process blocked")
		return
	}
	if current.RemainingTick > 0 && current.ExecutedTick() < cpu.Quantum()*current.ExecutionCount {
		return
	}

	next := cpu.NextReady(ordering)
	if next == nil {
		if current.RemainingTick <= 0 || cpu.LegacyRoundRobin() {
			cpu.Complete("quantum expired with empty ready queue")
		}
		return
	}
	if current.RemainingTick > 0 {
		cpu.Preempt("quantum expired")
	} else {
		cpu.Complete("burst finished")
	}
	cpu.Dispatch(next, "next in rotation")
}

// keyedPreemption is the shared shape of shortest-remaining-time-first and
// priority-preemptive: every tick the best ready candidate is compared against the
// running process and takes the CPU when its key is strictly smaller.
func keyedPreemption(cpu *CPU, ordering QueueOrdering, key func(*Process) int64, label string) {
	current := cpu.Current()
	if current == nil {
		cpu.DispatchNext(ordering, "cpu idle")
		return
	}
	if cpu.ShouldBlock() {
		cpu.Block("io point reached")
		cpu.DispatchNext(ordering, "previous process blocked")
		return
	}

	next := cpu.NextReady(ordering)
	if current.RemainingTick <= 0 {
		cpu.Complete("burst finished")
		if next != nil {
			cpu.Dispatch(next, "previous process completed")
		}
		return
	}
	if next != nil && key(current) > key(next) {
		cpu.Preempt(fmt.Sprintf("%s %d beaten by process %d with %d", label, key(current), next.ID, key(next)))
		cpu.Dispatch(next, fmt.Sprintf("lower %s", label))
	}
}

// ShortestRemainingFirst preempts whenever a ready process needs fewer CPU ticks
// than the running one.
type ShortestRemainingFirst struct{}

func (ShortestRemainingFirst) Name() string { return PolicySRTF }

func (ShortestRemainingFirst) Decide(cpu *CPU) {
	keyedPreemption(cpu, RemainingOrdering{}, func(p *Process) int64 { return p.RemainingTick }, "remaining")
}

// PriorityPreemptive preempts whenever a ready process has a lower priority number
// (is more urgent) than the running one.
type PriorityPreemptive struct{}

func (PriorityPreemptive) Name() string { return PolicyPriorityPreemptive }

func (PriorityPreemptive) Decide(cpu *CPU) {
	keyedPreemption(cpu, PriorityOrdering{}, func(p *Process) int64 { return p.Priority }, "priority")
}
