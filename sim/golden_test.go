package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim/internal/testutil"
)

// TestGoldenDataset runs each hand-verified workload until drained and compares the
// schedule and statistics exactly.
func TestGoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	require.NotEmpty(t, dataset.Tests)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN the golden workload injected at tick 0
			cfg := quietConfig()
			cfg.CPU.Quantum = tc.Quantum
			specs := make([]ProcessSpec, len(tc.Workload))
			for i, w := range tc.Workload {
				specs[i] = ProcessSpec{Priority: w.Priority, BurstTick: w.BurstTick, IoBurstTick: w.IoBurstTick}
			}
			s := startedSimulator(t, tc.Policy, cfg, specs...)

			// WHEN driven until every process has completed
			d := NewDriver(s, 0)
			d.StopWhenDrained = true
			n, err := d.Run(context.Background(), 1000)
			require.NoError(t, err)

			// THEN the schedule matches exactly
			var order, ticks []int64
			for _, p := range s.CompletedProcesses() {
				order = append(order, p.ID)
				ticks = append(ticks, *p.CompletionTick)
			}
			assert.Equal(t, tc.Metrics.CompletionOrder, order, "completion order")
			assert.Equal(t, tc.Metrics.CompletionTicks, ticks, "completion ticks")
			assert.Equal(t, tc.Metrics.TotalTicks, n, "ticks driven")

			st := s.Statistics()
			assert.Equal(t, tc.Metrics.TotalTicks, st.TotalTicks)
			assert.Equal(t, tc.Metrics.UsedCPUTicks, st.UsedCPUTicks)
			testutil.AssertFloat64Equal(t, "average_waiting_ticks", tc.Metrics.AverageWaitingTicks, st.AverageWaitingTicks, 1e-9)
			testutil.AssertFloat64Equal(t, "average_blocking_ticks", tc.Metrics.AverageBlockingTicks, st.AverageBlockingTicks, 1e-9)
			testutil.AssertFloat64Equal(t, "cpu_usage_percent", tc.Metrics.CPUUsagePercent, st.CPUUsage, 1e-9)
		})
	}
}
