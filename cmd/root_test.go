package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/schedsim/schedsim/sim"
)

// setFlag sets a run flag as if passed on the command line and restores it afterwards.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := runCmd.Flags().Lookup(name)
	require.NotNil(t, f, "unknown flag %s", name)
	require.NoError(t, runCmd.Flags().Set(name, value))
	t.Cleanup(func() {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveScenario_DefaultsWhenNothingSet(t *testing.T) {
	// GIVEN no flags, preset or config
	// WHEN the scenario is resolved
	sc, err := resolveScenario(runCmd)
	require.NoError(t, err)

	// THEN defaults apply, with the flag defaults for policy and seed
	assert.Equal(t, sim.DefaultConfig(), sc.Config())
	assert.Equal(t, sim.PolicyFCFS, sc.Policy)
	require.NotNil(t, sc.Seed)
	assert.Equal(t, int64(42), *sc.Seed)
}

func TestResolveScenario_ConfigFileThenExplicitFlagsWin(t *testing.T) {
	// GIVEN a config file choosing round-robin, seed 7 and quantum 3
	path := writeScenario(t, "policy: round-robin\nseed: 7\ncpu:\n  quantum: 3\n")
	setFlag(t, "config", path)

	// WHEN only --quantum is passed explicitly
	setFlag(t, "quantum", "5")
	sc, err := resolveScenario(runCmd)
	require.NoError(t, err)

	// THEN the file governs what the flags did not set
	assert.Equal(t, sim.PolicyRoundRobin, sc.Policy)
	assert.Equal(t, int64(7), *sc.Seed)
	assert.Equal(t, int64(5), sc.CPU.Quantum)
	assert.Equal(t, sim.DefaultConfig().Processes, sc.Processes)
}

func TestResolveScenario_SeedFlagOverridesFileSeed(t *testing.T) {
	setFlag(t, "config", writeScenario(t, "seed: 7\n"))
	setFlag(t, "seed", "100")

	sc, err := resolveScenario(runCmd)

	require.NoError(t, err)
	assert.Equal(t, int64(100), *sc.Seed)
}

func TestResolveScenario_Preset(t *testing.T) {
	setFlag(t, "preset", "io-heavy")
	setFlag(t, "percent-arrival", "0")

	sc, err := resolveScenario(runCmd)

	require.NoError(t, err)
	assert.Equal(t, sim.PolicySJF, sc.Policy)
	assert.Equal(t, int64(30), sc.Processes.MaxBurstTick)
	assert.Zero(t, sc.Processes.PercentArrivalNewProcess)
}

func TestResolveScenario_ConfigLayersOverPreset(t *testing.T) {
	// GIVEN the io-heavy preset and a config file that only changes the quantum
	setFlag(t, "preset", "io-heavy")
	setFlag(t, "config", writeScenario(t, "cpu:\n  quantum: 7\n"))

	// WHEN the scenario is resolved
	sc, err := resolveScenario(runCmd)
	require.NoError(t, err)

	// THEN the file value wins and the rest of the preset survives
	assert.Equal(t, int64(7), sc.CPU.Quantum)
	assert.Equal(t, int64(200), sc.CPU.TickSpeedMs)
	assert.Equal(t, sim.PolicySJF, sc.Policy)
	assert.Equal(t, int64(30), sc.Processes.MaxBurstTick)
	assert.Equal(t, 12, sc.Processes.MaxInitialProcesses)
}

func TestResolveScenario_UnknownPreset(t *testing.T) {
	setFlag(t, "preset", "nope")
	_, err := resolveScenario(runCmd)
	assert.Error(t, err)
}

func TestResolveScenario_BadConfigFile(t *testing.T) {
	setFlag(t, "config", writeScenario(t, "cpu:\n  quantom: 3\n"))
	_, err := resolveScenario(runCmd)
	assert.Error(t, err)
}

func TestRunScenario_PrintsReportAndSavesResults(t *testing.T) {
	// GIVEN a drained run with an injected workload and tracing on
	out := filepath.Join(t.TempDir(), "results.json")
	setFlag(t, "horizon", "0")
	setFlag(t, "until-drained", "true")
	setFlag(t, "results-path", out)
	setFlag(t, "trace-level", "decisions")
	setFlag(t, "summarize-trace", "true")
	seedValue := int64(3)
	sc := &sim.Scenario{
		Policy: sim.PolicyRoundRobin,
		Seed:   &seedValue,
		Processes: sim.ProcessConfig{
			MaxPriority: 1, MaxBurstTick: 3, MaxBurstIoTick: 1, MaxInitialProcesses: 2,
		},
		CPU:      sim.CPUConfig{Quantum: 2},
		Workload: []sim.ProcessSpec{{Priority: 1, BurstTick: 4}},
	}

	// WHEN the scenario runs
	var buf bytes.Buffer
	s, err := runScenario(context.Background(), sc, &buf)
	require.NoError(t, err)

	// THEN every process completed and the report was printed
	assert.Equal(t, sim.RunStopped, s.State())
	assert.Len(t, s.CompletedProcesses(), 3)
	assert.Contains(t, buf.String(), "=== Simulation Statistics ===")
	assert.Contains(t, buf.String(), "=== Decision Trace Summary ===")

	// AND the JSON results describe the same run
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var results sim.RunResults
	require.NoError(t, json.Unmarshal(data, &results))
	assert.Equal(t, s.RunID(), results.RunID)
	assert.Equal(t, int64(3), results.Seed)
	assert.Equal(t, 3, results.Statistics.CompletedProcesses)
}

func TestRunScenario_HorizonLimitsTicks(t *testing.T) {
	setFlag(t, "horizon", "25")
	seedValue := int64(42)
	sc := &sim.Scenario{Policy: sim.PolicySRTF, Seed: &seedValue, Processes: sim.DefaultConfig().Processes, CPU: sim.DefaultConfig().CPU}

	var buf bytes.Buffer
	s, err := runScenario(context.Background(), sc, &buf)

	require.NoError(t, err)
	assert.Equal(t, int64(25), s.Clock())
	assert.Contains(t, buf.String(), "Total Ticks          : 25")
}

func TestRunScenario_UnknownPolicy(t *testing.T) {
	seedValue := int64(1)
	sc := &sim.Scenario{Policy: "lottery", Seed: &seedValue}
	_, err := runScenario(context.Background(), sc, &bytes.Buffer{})
	assert.ErrorIs(t, err, sim.ErrUnknownPolicy)
}

func TestPrintPolicies(t *testing.T) {
	var buf bytes.Buffer
	printPolicies(&buf)
	out := buf.String()
	for _, name := range sim.ValidPolicyNames() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "round-robin          preemptive")
	assert.Contains(t, out, "fcfs                 non-preemptive")
}
