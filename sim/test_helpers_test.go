package sim

import (
	"math/rand"
	"testing"
)

// quietConfig returns a configuration with no generated population and no random
// arrivals, so tests control the workload through AddProcess.
func quietConfig() SimulatorConfig {
	cfg := DefaultConfig()
	cfg.Processes.MaxInitialProcesses = 0
	cfg.Processes.PercentArrivalNewProcess = 0
	return cfg
}

// startedSimulator returns a Running simulator under the named policy with the given
// processes injected at tick 0.
func startedSimulator(t *testing.T, policy string, cfg SimulatorConfig, specs ...ProcessSpec) *Simulator {
	t.Helper()
	s, err := NewSimulatorWithPolicyName(cfg, policy, NewSimulationKey(42))
	if err != nil {
		t.Fatalf("NewSimulatorWithPolicyName(%q): %v", policy, err)
	}
	if !s.Start() {
		t.Fatalf("Start() returned false on a fresh simulator")
	}
	for _, spec := range specs {
		s.AddProcess(spec)
	}
	return s
}

// tickN advances the simulator n times, failing the test if a tick is refused.
func tickN(t *testing.T, s *Simulator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if !s.Tick() {
			t.Fatalf("Tick() refused at iteration %d in state %s", i, s.State())
		}
	}
}

// processByID looks up a process copy by id.
func processByID(t *testing.T, s *Simulator, id int64) Process {
	t.Helper()
	for _, p := range s.Processes() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("process %d not found", id)
	return Process{}
}

func cpuBound(priority, burst int64) ProcessSpec {
	return ProcessSpec{Priority: priority, BurstTick: burst}
}

func ids(processes []*Process) []int64 {
	out := make([]int64, len(processes))
	for i, p := range processes {
		out[i] = p.ID
	}
	return out
}

// newRandFromSeed creates a *rand.Rand with the given seed.
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
