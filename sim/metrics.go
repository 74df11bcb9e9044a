// Derives run-wide statistics (averages over completed processes, CPU usage)
// from the process collection, and renders them as a text report or JSON file.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Statistics is a recomputed-on-demand snapshot of a run.
// Averages are taken over completed processes and are 0 when none have completed.
type Statistics struct {
	TotalTicks         int64 `json:"total_ticks"`
	TotalTimeMs        int64 `json:"total_time_ms"` // TotalTicks × tick speed
	TotalProcesses     int   `json:"total_processes"`
	CompletedProcesses int   `json:"completed_processes"`

	AverageWaitingTicks    float64 `json:"average_waiting_ticks"`    // completion − arrival − burst
	AverageBlockingTicks   float64 `json:"average_blocking_ticks"`
	AverageExecutionTicks  float64 `json:"average_execution_ticks"`  // burst
	AverageTurnaroundTicks float64 `json:"average_turnaround_ticks"` // completion − arrival
	AverageResponseTicks   float64 `json:"average_response_ticks"`   // first dispatch − arrival

	UsedCPUTicks int64   `json:"used_cpu_ticks"`
	CPUUsage     float64 `json:"cpu_usage_percent"`
}

// ComputeStatistics is a pure function of the counters and process sets it is given.
func ComputeStatistics(totalTicks, usedCPUTicks, tickSpeedMs int64, processes []*Process, completed []Process) Statistics {
	waiting := make([]int64, 0, len(completed))
	blocking := make([]int64, 0, len(completed))
	execution := make([]int64, 0, len(completed))
	turnaround := make([]int64, 0, len(completed))
	response := make([]int64, 0, len(completed))
	for _, p := range completed {
		if p.CompletionTick == nil {
			continue
		}
		waiting = append(waiting, *p.CompletionTick-p.ArrivalTick-p.BurstTick)
		blocking = append(blocking, p.BlockingTick)
		execution = append(execution, p.BurstTick)
		turnaround = append(turnaround, *p.CompletionTick-p.ArrivalTick)
		if p.ResponseTick != nil {
			response = append(response, *p.ResponseTick-p.ArrivalTick)
		}
	}

	return Statistics{
		TotalTicks:             totalTicks,
		TotalTimeMs:            totalTicks * tickSpeedMs,
		TotalProcesses:         len(processes),
		CompletedProcesses:     len(completed),
		AverageWaitingTicks:    CalculateMean(waiting),
		AverageBlockingTicks:   CalculateMean(blocking),
		AverageExecutionTicks:  CalculateMean(execution),
		AverageTurnaroundTicks: CalculateMean(turnaround),
		AverageResponseTicks:   CalculateMean(response),
		UsedCPUTicks:           usedCPUTicks,
		CPUUsage:               cpuUsage(usedCPUTicks, totalTicks),
	}
}

// Print writes a human-readable report.
func (st Statistics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Statistics ===")
	fmt.Fprintf(w, "Total Ticks          : %d\n", st.TotalTicks)
	fmt.Fprintf(w, "Total Time           : %d ms\n", st.TotalTimeMs)
	fmt.Fprintf(w, "Processes            : %d (%d completed)\n", st.TotalProcesses, st.CompletedProcesses)
	fmt.Fprintf(w, "CPU Usage            : %.2f%%\n", st.CPUUsage)
	if st.CompletedProcesses > 0 {
		fmt.Fprintf(w, "Average Waiting      : %.2f ticks\n", st.AverageWaitingTicks)
		fmt.Fprintf(w, "Average Blocking     : %.2f ticks\n", st.AverageBlockingTicks)
		fmt.Fprintf(w, "Average Execution    : %.2f ticks\n", st.AverageExecutionTicks)
		fmt.Fprintf(w, "Average Turnaround   : %.2f ticks\n", st.AverageTurnaroundTicks)
		fmt.Fprintf(w, "Average Response     : %.2f ticks\n", st.AverageResponseTicks)
	}
}

// RunResults is the JSON document written by SaveResults.
type RunResults struct {
	RunID      string     `json:"run_id"`
	Policy     string     `json:"policy"`
	Seed       int64      `json:"seed"`
	Statistics Statistics `json:"statistics"`
	Processes  []Process  `json:"processes"`
}

// SaveResults writes the run's statistics and final process table as indented JSON.
func SaveResults(results RunResults, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote results to '%s'", path)
	return nil
}
