package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// advanceLifecycle applies one tick of policy-independent bookkeeping to every
// process that has not completed. It runs after the policy has decided.
func (s *Simulator) advanceLifecycle() {
	for _, p := range s.processes {
		switch p.State {
		case StateRunning:
			if p.RemainingTick > 0 {
				p.RemainingTick--
			}
			p.TurnaroundTick++
		case StateReady:
			p.WaitingTick++
			p.TurnaroundTick++
		case StateBlocked:
			if p.RemainingIoTick > 0 {
				p.RemainingIoTick--
			}
			p.BlockingTick++
			p.TurnaroundTick++
			if p.RemainingIoTick == 0 {
				p.State = StateReady
				logrus.Tracef("[tick %07d] process %d finished I/O after %d ticks", s.clock, p.ID, p.BlockingTick)
				s.record(trace.KindUnblock, p.ID, "io episode finished")
			}
		}
	}
}

// refreshViews rebuilds the ready, blocked and completed views from the process collection.
func (s *Simulator) refreshViews() {
	s.ready = filterQueue(s.processes, StateReady)
	s.blocked = filterQueue(s.processes, StateBlocked)
	s.completed = completedQueue(s.processes)
}
