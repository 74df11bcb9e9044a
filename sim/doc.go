// Package sim provides the discrete-time CPU scheduling simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (ready → running → blocked/completed) and state machine
//   - simulator.go: run-state control surface and the per-tick loop
//   - cpu.go: the handle policies use to dispatch, preempt, block and complete
//   - policy*.go: the seven scheduling policies
//
// # Per-tick order
//
// Each Tick performs, atomically with respect to other Simulator calls:
//  1. a possible random arrival (probability percent_arrival_new_process/100)
//  2. the policy decision
//  3. lifecycle bookkeeping (lifecycle.go) and view refresh
//  4. CPU usage accounting and clock advance
//  5. observer notification
//
// A process whose remaining ticks reach zero stays Running until the next
// policy decision completes it, so its completion tick equals the tick count
// at which it finished.
//
// # Key Interfaces
//
//   - Policy: decide who occupies the CPU for the coming tick
//   - QueueOrdering: order ready candidates for a policy
//
// Decision traces live in sim/trace/, which has no dependency on this package.
package sim
