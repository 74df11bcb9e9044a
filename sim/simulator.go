// sim/simulator.go
package sim

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// RunState is the Simulator's control state.
//
//	Stopped ──Start──▶ Running ──Pause──▶ Paused ──Reset──▶ Stopped
//	                     ▲  │               │
//	                     │  └─────Stop──────┼──▶ Stopped (state kept)
//	                     └─────Resume───────┘
type RunState string

const (
	RunStopped RunState = "stopped"
	RunRunning RunState = "running"
	RunPaused  RunState = "paused"
)

// Simulator is the core object that holds simulation time, the process collection,
// and the per-tick loop. It does not own a timer: callers advance it with Tick,
// directly or through a Driver.
//
// All methods are safe for concurrent use. A tick runs to completion under the
// Simulator's lock, so control calls and configuration updates from other goroutines
// take effect between ticks. Observers are notified after the lock is released.
type Simulator struct {
	mu sync.Mutex

	config SimulatorConfig
	policy Policy
	key    SimulationKey
	rng    *PartitionedRNG
	cpu    *CPU

	state        RunState
	runID        string
	clock        int64
	usedCPUTicks int64
	nextID       int64
	idle         bool

	// processes is the single source of truth; the views below are rebuilt from it.
	processes []*Process
	current   *Process
	ready     *ProcessQueue
	blocked   *ProcessQueue
	completed *ProcessQueue

	observers *observerSet
	trace     *trace.SimulationTrace
}

// NewSimulator creates a stopped Simulator. The key seeds every random draw of the
// runs it performs; the same key, configuration and policy reproduce the same run.
func NewSimulator(config SimulatorConfig, policy Policy, key SimulationKey) *Simulator {
	s := &Simulator{
		config:    config,
		policy:    policy,
		key:       key,
		rng:       NewPartitionedRNG(key),
		state:     RunStopped,
		nextID:    1,
		observers: newObserverSet(),
		trace:     trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelNone}),
	}
	s.cpu = &CPU{sim: s}
	s.refreshViews()
	return s
}

// NewSimulatorWithPolicyName creates a stopped Simulator using the named policy.
func NewSimulatorWithPolicyName(config SimulatorConfig, policyName string, key SimulationKey) (*Simulator, error) {
	policy, err := NewPolicy(policyName)
	if err != nil {
		return nil, err
	}
	return NewSimulator(config, policy, key), nil
}

// Start begins a fresh run: counters and process collections are cleared, a new
// RunID is assigned, and the initial population is generated. Only legal from Stopped.
func (s *Simulator) Start() bool {
	s.mu.Lock()
	if s.state != RunStopped {
		logrus.Debugf("[tick %07d] start ignored in state %s", s.clock, s.state)
		s.mu.Unlock()
		return false
	}
	s.clear()
	s.rng = NewPartitionedRNG(s.key)
	s.runID = uuid.NewString()
	specs := GenerateProcessSpecs(s.rng.ForSubsystem(SubsystemWorkload), s.config.Processes, s.config.Processes.MaxInitialProcesses)
	for _, spec := range specs {
		s.admit(spec, "initial population")
	}
	s.state = RunRunning
	logrus.Debugf("[tick %07d] run %s (seed %d) started with %d processes under %s", s.clock, s.runID, s.rng.Key(), len(s.processes), s.policy.Name())
	n := Notification{Kind: NotifyStart, Tick: s.clock}
	s.mu.Unlock()
	s.observers.notify(n)
	return true
}

// Pause freezes the run. Only legal from Running.
func (s *Simulator) Pause() bool {
	return s.transition(RunRunning, RunPaused, NotifyPause, nil)
}

// Resume continues a paused run without touching its state. Only legal from Paused.
func (s *Simulator) Resume() bool {
	return s.transition(RunPaused, RunRunning, NotifyResume, nil)
}

// Reset discards a paused run. Only legal from Paused.
func (s *Simulator) Reset() bool {
	return s.transition(RunPaused, RunStopped, NotifyReset, s.clear)
}

// Stop ends a running run but keeps its processes and counters for inspection.
// A later Start clears them. Only legal from Running.
func (s *Simulator) Stop() bool {
	return s.transition(RunRunning, RunStopped, NotifyStop, nil)
}

func (s *Simulator) transition(from, to RunState, kind NotificationKind, apply func()) bool {
	s.mu.Lock()
	if s.state != from {
		logrus.Debugf("[tick %07d] %s ignored in state %s", s.clock, kind, s.state)
		s.mu.Unlock()
		return false
	}
	if apply != nil {
		apply()
	}
	s.state = to
	logrus.Debugf("[tick %07d] %s: %s -> %s", s.clock, kind, from, to)
	n := Notification{Kind: kind, Tick: s.clock}
	s.mu.Unlock()
	s.observers.notify(n)
	return true
}

// clear drops all processes and counters. Caller holds the lock.
func (s *Simulator) clear() {
	s.clock = 0
	s.usedCPUTicks = 0
	s.nextID = 1
	s.idle = false
	s.processes = nil
	s.current = nil
	s.trace.Reset()
	s.refreshViews()
}

// Tick advances the run by one tick: a possible arrival, the policy decision,
// lifecycle bookkeeping, then observers are notified. Returns false (and does
// nothing) unless the Simulator is Running.
func (s *Simulator) Tick() bool {
	s.mu.Lock()
	if s.state != RunRunning {
		s.mu.Unlock()
		return false
	}
	s.step()
	n := Notification{Kind: NotifyTick, Tick: s.clock}
	s.mu.Unlock()
	s.observers.notify(n)
	return true
}

func (s *Simulator) step() {
	if ArrivalOccurs(s.rng.ForSubsystem(SubsystemArrival), s.config.Processes.PercentArrivalNewProcess) {
		spec := GenerateProcessSpecs(s.rng.ForSubsystem(SubsystemWorkload), s.config.Processes, 1)[0]
		s.admit(spec, "random arrival")
	}

	s.policy.Decide(s.cpu)
	if s.current == nil {
		if !s.idle {
			s.record(trace.KindIdle, 0, "no ready process")
		}
		s.idle = true
	} else {
		s.idle = false
	}

	s.advanceLifecycle()
	s.refreshViews()
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("[tick %07d] ready=%v blocked=%v", s.clock, s.ready, s.blocked)
	}

	if s.current != nil {
		s.usedCPUTicks++
	}
	s.clock++
}

// admit creates a Ready process at the current tick. Caller holds the lock.
func (s *Simulator) admit(spec ProcessSpec, reason string) *Process {
	p := newProcess(s.nextID, s.clock, spec)
	s.nextID++
	s.processes = append(s.processes, p)
	s.record(trace.KindArrival, p.ID, reason)
	s.refreshViews()
	logrus.Tracef("[tick %07d] admitted %v", s.clock, p)
	return p
}

// AddProcess inserts a process with explicit attributes. The Simulator still assigns
// its id and arrival tick. Legal in any run state; returns a copy of the new process.
func (s *Simulator) AddProcess(spec ProcessSpec) Process {
	s.mu.Lock()
	p := s.admit(spec, "added")
	out := *p
	n := Notification{Kind: NotifyProcess, Tick: s.clock}
	s.mu.Unlock()
	s.observers.notify(n)
	return out
}

// UpdateConfig replaces the configuration wholesale. Values are not range-checked.
// The change applies from the next tick.
func (s *Simulator) UpdateConfig(config SimulatorConfig) {
	s.mu.Lock()
	s.config = config
	logrus.Debugf("[tick %07d] configuration updated", s.clock)
	n := Notification{Kind: NotifyConfig, Tick: s.clock}
	s.mu.Unlock()
	s.observers.notify(n)
}

// SetPolicy switches to the named policy from the next tick.
// An unrecognized name returns an error wrapping ErrUnknownPolicy and leaves the
// current policy in place.
func (s *Simulator) SetPolicy(name string) error {
	policy, err := NewPolicy(name)
	if err != nil {
		return fmt.Errorf("set policy: %w", err)
	}
	s.mu.Lock()
	s.policy = policy
	logrus.Debugf("[tick %07d] policy set to %s", s.clock, name)
	n := Notification{Kind: NotifyPolicy, Tick: s.clock}
	s.mu.Unlock()
	s.observers.notify(n)
	return nil
}

// EnableTrace starts recording scheduling decisions at the given level.
// Recorded decisions are cleared by Start and Reset.
func (s *Simulator) EnableTrace(level trace.TraceLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace.Config = trace.TraceConfig{Level: level}
}

// record appends a decision to the trace. Caller holds the lock.
func (s *Simulator) record(kind trace.DecisionKind, processID int64, reason string) {
	logrus.Tracef("[tick %07d] %s process=%d (%s)", s.clock, kind, processID, reason)
	s.trace.Record(trace.DecisionRecord{
		RunID:     s.runID,
		Tick:      s.clock,
		Kind:      kind,
		ProcessID: processID,
		Policy:    s.policy.Name(),
		Reason:    reason,
	})
}
