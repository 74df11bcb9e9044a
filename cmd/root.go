package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
)

var (
	// CLI flags for the run
	seed           int64  // Seed for workload, arrival and policy randomness
	horizon        int64  // Maximum number of ticks to simulate (0 = no limit)
	logLevel       string // Log verbosity level
	policyName     string // Scheduling policy
	configPath     string // Scenario YAML file
	presetName     string // Embedded preset scenario
	untilDrained   bool   // Stop once every process has completed
	realtime       bool   // Pace ticks at tick_speed_ms instead of as fast as possible
	traceLevel     string // Decision trace level
	summarizeTrace bool   // Print a decision trace summary
	resultsPath    string // File to write JSON results to

	// CLI flags overriding SimulatorConfig fields
	maxPriority              int64   // Upper bound for generated priorities
	maxBurstTick             int64   // Upper bound for generated CPU bursts
	maxBurstIoTick           int64   // Upper bound for generated I/O bursts
	maxInitialProcesses      int     // Processes generated on start
	percentArrivalNewProcess float64 // Per-tick arrival chance
	quantum                  int64   // Round-robin time slice
	tickSpeedMs              int64   // Wall-clock milliseconds per tick
	legacyRoundRobin         bool    // Round-robin completes on quantum expiry with an empty queue
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Discrete-time simulator for CPU scheduling policies",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, decisions)", traceLevel)
		}
		if horizon == 0 && !untilDrained {
			logrus.Fatalf("Either --horizon > 0 or --until-drained is required")
		}

		scenario, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := scenario.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		if horizon == 0 && scenario.Processes.PercentArrivalNewProcess > 0 {
			logrus.Fatalf("--horizon 0 never drains with percent_arrival_new_process > 0")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if _, err := runScenario(ctx, scenario, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// resolveScenario layers the run description: defaults, then --preset, then --config
// applied over the preset, then any flag set explicitly on the command line.
func resolveScenario(cmd *cobra.Command) (*sim.Scenario, error) {
	scenario := sim.DefaultScenario()
	if presetName != "" {
		preset, err := applyPreset(presetName)
		if err != nil {
			return nil, err
		}
		scenario = preset
	}
	if configPath != "" {
		if err := scenario.MergeFile(configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("policy") || scenario.Policy == "" {
		scenario.Policy = policyName
	}
	if flags.Changed("seed") || scenario.Seed == nil {
		s := seed
		scenario.Seed = &s
	}
	if flags.Changed("max-priority") {
		scenario.Processes.MaxPriority = maxPriority
	}
	if flags.Changed("max-burst-tick") {
		scenario.Processes.MaxBurstTick = maxBurstTick
	}
	if flags.Changed("max-burst-io-tick") {
		scenario.Processes.MaxBurstIoTick = maxBurstIoTick
	}
	if flags.Changed("max-initial-processes") {
		scenario.Processes.MaxInitialProcesses = maxInitialProcesses
	}
	if flags.Changed("percent-arrival") {
		scenario.Processes.PercentArrivalNewProcess = percentArrivalNewProcess
	}
	if flags.Changed("quantum") {
		scenario.CPU.Quantum = quantum
	}
	if flags.Changed("tick-speed") {
		scenario.CPU.TickSpeedMs = tickSpeedMs
	}
	if flags.Changed("legacy-round-robin") {
		scenario.CPU.LegacyRoundRobin = legacyRoundRobin
	}
	return scenario, nil
}

// runScenario drives one run to the horizon (or until drained), then writes the
// report to out and, when requested, the JSON results file.
func runScenario(ctx context.Context, scenario *sim.Scenario, out io.Writer) (*sim.Simulator, error) {
	s, err := sim.NewSimulatorWithPolicyName(scenario.Config(), scenario.Policy, sim.NewSimulationKey(*scenario.Seed))
	if err != nil {
		return nil, err
	}
	if trace.TraceLevel(traceLevel) == trace.TraceLevelDecisions {
		s.EnableTrace(trace.TraceLevelDecisions)
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go logProgress(s, s.Watch(watchCtx, 64))

	s.Start()
	for _, spec := range scenario.Workload {
		s.AddProcess(spec)
	}
	logrus.Infof("Starting run %s: policy=%s seed=%d processes=%d", s.RunID(), scenario.Policy, *scenario.Seed, len(s.Processes()))

	driver := sim.NewDriver(s, 0)
	if realtime {
		driver = sim.NewConfiguredDriver(s)
	}
	driver.StopWhenDrained = untilDrained
	ticks, err := driver.Run(ctx, horizon)
	if err != nil {
		logrus.Warnf("Run interrupted after %d ticks: %v", ticks, err)
	}
	s.Stop()
	logrus.Infof("[tick %07d] Simulation ended", s.Clock())

	stats := s.Statistics()
	stats.Print(out)
	if trace.TraceLevel(traceLevel) == trace.TraceLevelDecisions && summarizeTrace {
		printTraceSummary(out, trace.Summarize(s.Trace()))
	}

	if resultsPath != "" {
		results := sim.RunResults{
			RunID:      s.RunID(),
			Policy:     scenario.Policy,
			Seed:       *scenario.Seed,
			Statistics: stats,
			Processes:  s.Processes(),
		}
		if err := sim.SaveResults(results, resultsPath); err != nil {
			return s, err
		}
	}
	return s, nil
}

// logProgress logs a queue summary for every tick notification until the channel closes.
func logProgress(s *sim.Simulator, notifications <-chan sim.Notification) {
	for n := range notifications {
		if n.Kind != sim.NotifyTick || !logrus.IsLevelEnabled(logrus.DebugLevel) {
			continue
		}
		running := "idle"
		if p, ok := s.CurrentProcess(); ok {
			running = fmt.Sprintf("p%d", p.ID)
		}
		logrus.Debugf("[tick %07d] cpu=%s ready=%d blocked=%d completed=%d",
			n.Tick, running, len(s.ReadyQueue()), len(s.BlockedQueue()), len(s.CompletedProcesses()))
	}
}

func printTraceSummary(w io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace Summary ===")
	fmt.Fprintf(w, "Total Decisions      : %d\n", summary.TotalDecisions)
	fmt.Fprintf(w, "Context Switches     : %d\n", summary.ContextSwitches)
	for _, kind := range []trace.DecisionKind{
		trace.KindArrival, trace.KindDispatch, trace.KindPreempt, trace.KindBlock,
		trace.KindUnblock, trace.KindComplete, trace.KindIdle,
	} {
		fmt.Fprintf(w, "  %-18s : %d\n", kind, summary.KindCounts[kind])
	}
	for _, pc := range summary.DispatchesPerProcess() {
		fmt.Fprintf(w, "  dispatches p%-6d : %d\n", pc.ProcessID, pc.Count)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Registers all CLI flags for the run command
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random workload, arrival and policy decisions")
	runCmd.Flags().Int64Var(&horizon, "horizon", 100, "Maximum number of ticks to simulate (0 = no limit, requires --until-drained)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&policyName, "policy", sim.PolicyFCFS, fmt.Sprintf("Scheduling policy %v", sim.ValidPolicyNames()))
	runCmd.Flags().StringVar(&configPath, "config", "", "Scenario YAML file")
	runCmd.Flags().StringVar(&presetName, "preset", "", fmt.Sprintf("Embedded preset scenario %v", presetNames()))
	runCmd.Flags().BoolVar(&untilDrained, "until-drained", false, "Stop once every process has completed (needs percent-arrival 0)")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "Pace ticks at tick_speed_ms")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().BoolVar(&summarizeTrace, "summarize-trace", false, "Print a decision trace summary (requires --trace-level decisions)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to save JSON results to")

	// Process generation
	runCmd.Flags().Int64Var(&maxPriority, "max-priority", defaults.Processes.MaxPriority, "Upper bound for generated priorities")
	runCmd.Flags().Int64Var(&maxBurstTick, "max-burst-tick", defaults.Processes.MaxBurstTick, "Upper bound for generated CPU bursts")
	runCmd.Flags().Int64Var(&maxBurstIoTick, "max-burst-io-tick", defaults.Processes.MaxBurstIoTick, "Upper bound for generated I/O bursts")
	runCmd.Flags().IntVar(&maxInitialProcesses, "max-initial-processes", defaults.Processes.MaxInitialProcesses, "Processes generated on start")
	runCmd.Flags().Float64Var(&percentArrivalNewProcess, "percent-arrival", defaults.Processes.PercentArrivalNewProcess, "Per-tick chance (0-100) of a new process")

	// CPU
	runCmd.Flags().Int64Var(&quantum, "quantum", defaults.CPU.Quantum, "Round-robin time slice in ticks")
	runCmd.Flags().Int64Var(&tickSpeedMs, "tick-speed", defaults.CPU.TickSpeedMs, "Milliseconds per tick")
	runCmd.Flags().BoolVar(&legacyRoundRobin, "legacy-round-robin", false, "Complete the running process when its quantum expires with an empty ready queue")

	// Attach `run` and `policies` as subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(policiesCmd)
}
