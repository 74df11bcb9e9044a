// Package testutil provides shared test infrastructure for the scheduling simulator:
// the golden dataset of hand-verified schedules and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenProcess is one explicitly injected process, all arriving at tick 0.
type GoldenProcess struct {
	Priority    int64 `json:"priority"`
	BurstTick   int64 `json:"burst_tick"`
	IoBurstTick int64 `json:"io_burst_tick"`
}

// GoldenTestCase represents a single schedule from the golden dataset.
type GoldenTestCase struct {
	Name     string          `json:"name"`
	Policy   string          `json:"policy"`
	Quantum  int64           `json:"quantum"`
	Workload []GoldenProcess `json:"workload"`
	Metrics  GoldenMetrics   `json:"metrics"`
}

// GoldenMetrics represents the expected outcome of running a workload until drained.
type GoldenMetrics struct {
	// Exact match (integers)
	CompletionOrder []int64 `json:"completion_order"`
	CompletionTicks []int64 `json:"completion_ticks"`
	TotalTicks      int64   `json:"total_ticks"`
	UsedCPUTicks    int64   `json:"used_cpu_ticks"`

	// Derived averages
	AverageWaitingTicks  float64 `json:"average_waiting_ticks"`
	AverageBlockingTicks float64 `json:"average_blocking_ticks"`
	CPUUsagePercent      float64 `json:"cpu_usage_percent"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
