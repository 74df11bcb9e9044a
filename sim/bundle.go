package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a complete run description, loadable from a YAML file.
// Sections omitted from the file keep their DefaultConfig values.
// Policy uses empty string for "not set"; Seed uses nil.
type Scenario struct {
	Policy    string        `yaml:"policy"`
	Seed      *int64        `yaml:"seed"`
	Processes ProcessConfig `yaml:"processes"`
	CPU       CPUConfig     `yaml:"cpu"`
	// Workload lists processes injected right after Start, on top of the generated population.
	Workload []ProcessSpec `yaml:"workload"`
}

// DefaultScenario returns a scenario carrying DefaultConfig with policy and seed unset.
func DefaultScenario() *Scenario {
	defaults := DefaultConfig()
	return &Scenario{Processes: defaults.Processes, CPU: defaults.CPU}
}

// LoadScenario reads and parses a YAML scenario file on top of DefaultConfig.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	sc := DefaultScenario()
	if err := sc.MergeFile(path); err != nil {
		return nil, err
	}
	return sc, nil
}

// ParseScenario parses scenario YAML on top of DefaultConfig. Empty input yields the defaults.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	if err := sc.Merge(data); err != nil {
		return nil, err
	}
	return sc, nil
}

// MergeFile reads a YAML scenario file and applies it over sc.
func (sc *Scenario) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading scenario: %w", err)
	}
	return sc.Merge(data)
}

// Merge applies scenario YAML over sc. Keys present in data replace the current
// values; absent keys are left alone. A workload list, when present, replaces the
// current one. On error sc may be partially updated.
func (sc *Scenario) Merge(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	return nil
}

// Config returns the SimulatorConfig described by the scenario.
func (sc *Scenario) Config() SimulatorConfig {
	return SimulatorConfig{Processes: sc.Processes, CPU: sc.CPU}
}

// Validate checks the policy name, the configuration ranges and every injected process.
func (sc *Scenario) Validate() error {
	if sc.Policy != "" && !IsValidPolicy(sc.Policy) {
		return fmt.Errorf("%w %q (valid: %v)", ErrUnknownPolicy, sc.Policy, ValidPolicyNames())
	}
	if err := sc.Config().Validate(); err != nil {
		return err
	}
	for i, spec := range sc.Workload {
		if spec.Priority < 1 {
			return fmt.Errorf("workload[%d]: priority must be >= 1, got %d", i, spec.Priority)
		}
		if spec.BurstTick < 1 {
			return fmt.Errorf("workload[%d]: burst_tick must be >= 1, got %d", i, spec.BurstTick)
		}
		if spec.IoBurstTick < 0 {
			return fmt.Errorf("workload[%d]: io_burst_tick must be non-negative, got %d", i, spec.IoBurstTick)
		}
	}
	return nil
}
