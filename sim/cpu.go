package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// CPU is the handle a Policy uses to inspect and change who occupies the processor.
// Every transition goes through it so response/completion ticks, execution counts,
// queue views and the decision trace stay consistent.
// Processes returned by CPU methods are live; policies MUST NOT modify them directly.
type CPU struct {
	sim *Simulator
}

// Clock returns the current tick count.
func (c *CPU) Clock() int64 {
	return c.sim.clock
}

// Quantum returns the configured round-robin time slice.
func (c *CPU) Quantum() int64 {
	return c.sim.config.CPU.Quantum
}

// LegacyRoundRobin reports whether the round-robin compatibility behavior is enabled.
func (c *CPU) LegacyRoundRobin() bool {
	return c.sim.config.CPU.LegacyRoundRobin
}

// Rand returns the RNG reserved for policy decisions.
func (c *CPU) Rand() *rand.Rand {
	return c.sim.rng.ForSubsystem(SubsystemPolicy)
}

// Current returns the running process, or nil when the CPU is idle.
func (c *CPU) Current() *Process {
	return c.sim.current
}

// NextReady returns the best ready candidate under the given ordering, or nil.
// The ready view is not modified.
func (c *CPU) NextReady(ordering QueueOrdering) *Process {
	candidates := c.sim.ready.Snapshot()
	if len(candidates) == 0 {
		return nil
	}
	ordering.OrderQueue(candidates)
	return candidates[0]
}

// ShouldBlock reports whether the running process has reached its I/O point:
// it has consumed at least half of its burst and still has an I/O episode pending.
func (c *CPU) ShouldBlock() bool {
	p := c.sim.current
	return p != nil && p.State == StateRunning && p.ReachedIOPoint() && p.IOBound()
}

// Dispatch moves a ready process onto the CPU.
// The CPU must be idle; the previous occupant has to be preempted, blocked or completed first.
func (c *CPU) Dispatch(p *Process, reason string) {
	s := c.sim
	if p == nil || p.State != StateReady || s.current != nil {
		logrus.Warnf("[tick %07d] dispatch rejected for %v", s.clock, p)
		return
	}
	p.State = StateRunning
	if p.ResponseTick == nil {
		p.ResponseTick = tickPtr(s.clock)
	}
	p.ExecutionCount++
	s.current = p
	s.record(trace.KindDispatch, p.ID, reason)
	s.refreshViews()
}

// Preempt returns the running process to the ready queue with its remaining ticks intact.
func (c *CPU) Preempt(reason string) {
	s := c.sim
	p := s.current
	if p == nil {
		return
	}
	p.State = StateReady
	s.current = nil
	s.record(trace.KindPreempt, p.ID, reason)
	s.refreshViews()
}

// Block moves the running process to the blocked queue for its I/O episode.
func (c *CPU) Block(reason string) {
	s := c.sim
	p := s.current
	if p == nil {
		return
	}
	p.State = StateBlocked
	s.current = nil
	s.record(trace.KindBlock, p.ID, reason)
	s.refreshViews()
}

// Complete retires the running process. Completed processes are never touched again.
func (c *CPU) Complete(reason string) {
	s := c.sim
	p := s.current
	if p == nil {
		return
	}
	p.State = StateCompleted
	p.CompletionTick = tickPtr(s.clock)
	s.current = nil
	s.record(trace.KindComplete, p.ID, reason)
	s.refreshViews()
}

// DispatchNext dispatches the best ready candidate, leaving the CPU idle when there is none.
func (c *CPU) DispatchNext(ordering QueueOrdering, reason string) {
	if next := c.NextReady(ordering); next != nil {
		c.Dispatch(next, reason)
	}
}
