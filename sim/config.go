package sim

import "fmt"

// ProcessConfig groups the random workload generation envelope.
type ProcessConfig struct {
	MaxPriority              int64   `yaml:"max_priority"`                // priorities drawn from [1, MaxPriority]
	MaxBurstTick             int64   `yaml:"max_burst_tick"`              // bursts drawn from [1, MaxBurstTick]
	MaxBurstIoTick           int64   `yaml:"max_burst_io_tick"`           // I/O bursts drawn from [1, MaxBurstIoTick]
	MaxInitialProcesses      int     `yaml:"max_initial_processes"`       // population generated on Start
	PercentArrivalNewProcess float64 `yaml:"percent_arrival_new_process"` // per-tick arrival chance in [0, 100]
}

// CPUConfig groups processor parameters.
type CPUConfig struct {
	Quantum     int64 `yaml:"quantum"`       // round-robin time slice (ticks)
	TickSpeedMs int64 `yaml:"tick_speed_ms"` // wall-clock pacing used by Driver and TotalTime

	// LegacyRoundRobin completes the running process whenever its quantum expires
	// with an empty ready queue, even if it still has CPU ticks left.
	LegacyRoundRobin bool `yaml:"legacy_round_robin"`
}

// SimulatorConfig is the whole configuration owned by a Simulator.
// The engine never range-checks it; out-of-range values degrade behavior without crashing.
type SimulatorConfig struct {
	Processes ProcessConfig `yaml:"processes"`
	CPU       CPUConfig     `yaml:"cpu"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() SimulatorConfig {
	return SimulatorConfig{
		Processes: ProcessConfig{
			MaxPriority:              5,
			MaxBurstTick:             10,
			MaxBurstIoTick:           100,
			MaxInitialProcesses:      10,
			PercentArrivalNewProcess: 20,
		},
		CPU: CPUConfig{
			Quantum:     2,
			TickSpeedMs: 1000,
		},
	}
}

// Validate reports configuration values that would produce degenerate runs.
// The Simulator does not call it; front ends decide whether to enforce it.
func (c SimulatorConfig) Validate() error {
	p := c.Processes
	if p.MaxPriority < 1 {
		return fmt.Errorf("max_priority must be >= 1, got %d", p.MaxPriority)
	}
	if p.MaxBurstTick < 1 {
		return fmt.Errorf("max_burst_tick must be >= 1, got %d", p.MaxBurstTick)
	}
	if p.MaxBurstIoTick < 1 {
		return fmt.Errorf("max_burst_io_tick must be >= 1, got %d", p.MaxBurstIoTick)
	}
	if p.MaxInitialProcesses < 0 {
		return fmt.Errorf("max_initial_processes must be non-negative, got %d", p.MaxInitialProcesses)
	}
	if p.PercentArrivalNewProcess < 0 || p.PercentArrivalNewProcess > 100 {
		return fmt.Errorf("percent_arrival_new_process must be in [0, 100], got %g", p.PercentArrivalNewProcess)
	}
	if c.CPU.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0, got %d", c.CPU.Quantum)
	}
	if c.CPU.TickSpeedMs < 0 {
		return fmt.Errorf("tick_speed_ms must be non-negative, got %d", c.CPU.TickSpeedMs)
	}
	return nil
}
