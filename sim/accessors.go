package sim

import "github.com/schedsim/schedsim/sim/trace"

// Read accessors. All are side-effect free and return copies, so callers may keep
// or modify the results without affecting the Simulator.

// State returns the current run state.
func (s *Simulator) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Clock returns the number of ticks elapsed in the current run.
func (s *Simulator) Clock() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// RunID returns the identifier assigned by the most recent Start, or "" before the first.
func (s *Simulator) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// PolicyName returns the name of the active policy.
func (s *Simulator) PolicyName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Name()
}

// Config returns the current configuration.
func (s *Simulator) Config() SimulatorConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// CurrentProcess returns the running process, if any.
func (s *Simulator) CurrentProcess() (Process, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Process{}, false
	}
	return *s.current, true
}

// Processes returns every process of the run in creation order.
func (s *Simulator) Processes() []Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Process, len(s.processes))
	for i, p := range s.processes {
		out[i] = *p
	}
	return out
}

// ReadyQueue returns the Ready processes in creation order.
func (s *Simulator) ReadyQueue() []Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready.Values()
}

// BlockedQueue returns the Blocked processes in creation order.
func (s *Simulator) BlockedQueue() []Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked.Values()
}

// CompletedProcesses returns the Completed processes in completion order.
func (s *Simulator) CompletedProcesses() []Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed.Values()
}

// Drained reports whether every process of the run has completed.
func (s *Simulator) Drained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == nil && s.ready.Len() == 0 && s.blocked.Len() == 0
}

// Statistics returns a snapshot of the run's derived metrics.
func (s *Simulator) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStatistics(s.clock, s.usedCPUTicks, s.config.CPU.TickSpeedMs, s.processes, s.completed.Values())
}

// CPUUsage returns the percentage of elapsed ticks in which a process was Running.
func (s *Simulator) CPUUsage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cpuUsage(s.usedCPUTicks, s.clock)
}

// Trace returns a copy of the decisions recorded in the current run.
func (s *Simulator) Trace() *trace.SimulationTrace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := trace.NewSimulationTrace(s.trace.Config)
	out.Decisions = append(out.Decisions, s.trace.Decisions...)
	return out
}
