package sim

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicy_AllValidNames_ReturnMatchingName(t *testing.T) {
	for _, name := range ValidPolicyNames() {
		t.Run(name, func(t *testing.T) {
			p, err := NewPolicy(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name())
		})
	}
}

func TestNewPolicy_UnknownName_FailsLoudly(t *testing.T) {
	for _, name := range []string{"", "lottery", "FCFS", "round_robin"} {
		t.Run(name, func(t *testing.T) {
			p, err := NewPolicy(name)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrUnknownPolicy), "got %v", err)
		})
	}
}

func TestValidPolicyNames_SortedAndComplete(t *testing.T) {
	names := ValidPolicyNames()
	assert.Len(t, names, 7)
	assert.True(t, sort.StringsAreSorted(names))
	for _, n := range names {
		assert.True(t, IsValidPolicy(n))
	}
}

func TestIsPreemptive(t *testing.T) {
	assert.True(t, IsPreemptive(PolicyRoundRobin))
	assert.True(t, IsPreemptive(PolicySRTF))
	assert.True(t, IsPreemptive(PolicyPriorityPreemptive))
	assert.False(t, IsPreemptive(PolicyFCFS))
	assert.False(t, IsPreemptive(PolicySJF))
	assert.False(t, IsPreemptive(PolicyPriority))
	assert.False(t, IsPreemptive(PolicyRandom))
}

// firstDispatched returns the id of the process running after one tick.
func firstDispatched(t *testing.T, policy string, specs ...ProcessSpec) int64 {
	t.Helper()
	s := startedSimulator(t, policy, quietConfig(), specs...)
	tickN(t, s, 1)
	cur, ok := s.CurrentProcess()
	require.True(t, ok, "no process dispatched")
	return cur.ID
}

func TestNonPreemptive_SelectionOrder(t *testing.T) {
	// FCFS: all arrive at tick 0, so creation order decides.
	assert.Equal(t, int64(1), firstDispatched(t, PolicyFCFS, cpuBound(3, 7), cpuBound(1, 3), cpuBound(2, 9)))
	// SJF: bursts [7,3,9] selects burst 3.
	assert.Equal(t, int64(2), firstDispatched(t, PolicySJF, cpuBound(3, 7), cpuBound(1, 3), cpuBound(2, 9)))
	// Priority: priorities [3,1,2] selects priority 1.
	assert.Equal(t, int64(2), firstDispatched(t, PolicyPriority, cpuBound(3, 7), cpuBound(1, 3), cpuBound(2, 9)))
}

func TestNonPreemptive_RunsToCompletionThenDispatchesNextSameTick(t *testing.T) {
	// GIVEN FCFS with bursts 2 and 4
	s := startedSimulator(t, PolicyFCFS, quietConfig(), cpuBound(1, 2), cpuBound(1, 4))

	// WHEN three ticks pass (two to run P1, one to complete it)
	tickN(t, s, 3)

	// THEN P1 completed at tick 2 and P2 took the CPU in the same decision
	p1 := processByID(t, s, 1)
	assert.Equal(t, StateCompleted, p1.State)
	require.NotNil(t, p1.CompletionTick)
	assert.Equal(t, int64(2), *p1.CompletionTick)
	cur, ok := s.CurrentProcess()
	require.True(t, ok)
	assert.Equal(t, int64(2), cur.ID)
	assert.Equal(t, int64(3), cur.RemainingTick)
	assert.Equal(t, int64(2), cur.WaitingTick)
}

func TestNonPreemptive_NewArrivalNeverPreempts(t *testing.T) {
	for _, policy := range []string{PolicyFCFS, PolicySJF, PolicyPriority, PolicyRandom} {
		t.Run(policy, func(t *testing.T) {
			// GIVEN a long low-urgency process already running
			s := startedSimulator(t, policy, quietConfig(), cpuBound(5, 5))
			tickN(t, s, 1)

			// WHEN a short urgent process arrives
			s.AddProcess(cpuBound(1, 1))
			tickN(t, s, 2)

			// THEN the original keeps the CPU
			cur, ok := s.CurrentProcess()
			require.True(t, ok)
			assert.Equal(t, int64(1), cur.ID)
		})
	}
}

func TestIOBlocking_OnlySJFAmongNonPreemptive(t *testing.T) {
	tests := []struct {
		policy    string
		wantState ProcessState
	}{
		{PolicySJF, StateBlocked},
		{PolicyFCFS, StateRunning},
		{PolicyPriority, StateRunning},
		{PolicyRandom, StateRunning},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			// GIVEN burst 10 with a 4-tick I/O episode
			s := startedSimulator(t, tt.policy, quietConfig(), ProcessSpec{Priority: 1, BurstTick: 10, IoBurstTick: 4})

			// WHEN six ticks pass (remaining reaches 5 after the fifth)
			tickN(t, s, 6)

			// THEN only SJF has moved it to Blocked
			assert.Equal(t, tt.wantState, processByID(t, s, 1).State)
		})
	}
}

func TestIOBlocking_BlocksAtHalfAndReturnsAfterEpisode(t *testing.T) {
	for _, policy := range []string{PolicySJF, PolicyRoundRobin, PolicySRTF, PolicyPriorityPreemptive} {
		t.Run(policy, func(t *testing.T) {
			cfg := quietConfig()
			cfg.CPU.Quantum = 100
			s := startedSimulator(t, policy, cfg, ProcessSpec{Priority: 1, BurstTick: 10, IoBurstTick: 4})

			// GIVEN five ticks of execution: Running with remaining 5
			tickN(t, s, 5)
			p := processByID(t, s, 1)
			require.Equal(t, StateRunning, p.State)
			require.Equal(t, int64(5), p.RemainingTick)

			// WHEN the next decision runs
			tickN(t, s, 1)

			// THEN the process is Blocked with remaining unchanged
			p = processByID(t, s, 1)
			assert.Equal(t, StateBlocked, p.State)
			assert.Equal(t, int64(5), p.RemainingTick)
			assert.Len(t, s.BlockedQueue(), 1)

			// AND it is back in Ready once all 4 I/O ticks have elapsed, not before
			tickN(t, s, 2)
			assert.Equal(t, StateBlocked, processByID(t, s, 1).State)
			tickN(t, s, 1)
			p = processByID(t, s, 1)
			assert.Equal(t, StateReady, p.State)
			assert.Equal(t, int64(4), p.BlockingTick)
			assert.Zero(t, p.RemainingIoTick)
			assert.Empty(t, s.BlockedQueue())
		})
	}
}

func TestIOBlocking_DispatchesNextInSameDecision(t *testing.T) {
	// GIVEN SJF with an I/O-bound burst 10 and a longer CPU-bound burst 20
	s := startedSimulator(t, PolicySJF, quietConfig(),
		ProcessSpec{Priority: 1, BurstTick: 10, IoBurstTick: 4}, cpuBound(1, 20))

	// WHEN the I/O point is reached
	tickN(t, s, 6)

	// THEN the second process runs immediately
	cur, ok := s.CurrentProcess()
	require.True(t, ok)
	assert.Equal(t, int64(2), cur.ID)
	assert.Equal(t, int64(1), cur.ExecutionCount)
}

func TestRoundRobin_Fairness(t *testing.T) {
	// GIVEN quantum 2 and three burst-5 processes arriving together
	cfg := quietConfig()
	cfg.CPU.Quantum = 2
	s := startedSimulator(t, PolicyRoundRobin, cfg, cpuBound(1, 5), cpuBound(1, 5), cpuBound(1, 5))

	// WHEN six ticks pass
	tickN(t, s, 6)

	// THEN each ran exactly two ticks and was dispatched once
	for id := int64(1); id <= 3; id++ {
		p := processByID(t, s, id)
		assert.Equal(t, int64(2), p.ExecutedTick(), "process %d", id)
		assert.Equal(t, int64(1), p.ExecutionCount, "process %d", id)
	}

	// AND the rotation returns to the first process
	tickN(t, s, 1)
	cur, ok := s.CurrentProcess()
	require.True(t, ok)
	assert.Equal(t, int64(1), cur.ID)
	assert.Equal(t, int64(2), cur.ExecutionCount)
}

func TestRoundRobin_AloneKeepsRunningPastQuantum(t *testing.T) {
	// GIVEN a single burst-5 process under quantum 2
	cfg := quietConfig()
	cfg.CPU.Quantum = 2
	s := startedSimulator(t, PolicyRoundRobin, cfg, cpuBound(1, 5))

	// WHEN six ticks pass
	tickN(t, s, 6)

	// THEN it ran its whole burst and completed at tick 5
	p := processByID(t, s, 1)
	assert.Equal(t, StateCompleted, p.State)
	require.NotNil(t, p.CompletionTick)
	assert.Equal(t, int64(5), *p.CompletionTick)
	assert.Zero(t, p.RemainingTick)
}

func TestRoundRobin_LegacyCompletesOnEmptyQueue(t *testing.T) {
	// GIVEN the legacy flag and a single burst-5 process under quantum 2
	cfg := quietConfig()
	cfg.CPU.Quantum = 2
	cfg.CPU.LegacyRoundRobin = true
	s := startedSimulator(t, PolicyRoundRobin, cfg, cpuBound(1, 5))

	// WHEN the quantum expires with nobody waiting
	tickN(t, s, 3)

	// THEN the process is completed with CPU ticks still left
	p := processByID(t, s, 1)
	assert.Equal(t, StateCompleted, p.State)
	assert.Equal(t, int64(3), p.RemainingTick)
	require.NotNil(t, p.CompletionTick)
	assert.Equal(t, int64(2), *p.CompletionTick)
}

func TestSRTF_PreemptsForShorterRemaining(t *testing.T) {
	// GIVEN a burst-7 process that has run one tick (remaining 6)
	s := startedSimulator(t, PolicySRTF, quietConfig(), cpuBound(1, 7))
	tickN(t, s, 1)

	// WHEN a process needing 2 ticks arrives
	s.AddProcess(cpuBound(1, 2))
	tickN(t, s, 1)

	// THEN it takes the CPU on that tick and the preempted process keeps remaining 6
	cur, ok := s.CurrentProcess()
	require.True(t, ok)
	assert.Equal(t, int64(2), cur.ID)
	p1 := processByID(t, s, 1)
	assert.Equal(t, StateReady, p1.State)
	assert.Equal(t, int64(6), p1.RemainingTick)
}

func TestSRTF_EqualRemainingDoesNotPreempt(t *testing.T) {
	s := startedSimulator(t, PolicySRTF, quietConfig(), cpuBound(1, 4))
	tickN(t, s, 1)
	s.AddProcess(cpuBound(1, 3))
	tickN(t, s, 1)

	cur, ok := s.CurrentProcess()
	require.True(t, ok)
	assert.Equal(t, int64(1), cur.ID)
}

func TestSRTF_CompletesThenPromotesCandidate(t *testing.T) {
	// GIVEN a burst-1 process followed by a burst-3 one
	s := startedSimulator(t, PolicySRTF, quietConfig(), cpuBound(1, 1), cpuBound(1, 3))

	// WHEN two ticks pass
	tickN(t, s, 2)

	// THEN the first completed at tick 1 and the second is running
	p1 := processByID(t, s, 1)
	assert.Equal(t, StateCompleted, p1.State)
	assert.Equal(t, int64(1), *p1.CompletionTick)
	cur, ok := s.CurrentProcess()
	require.True(t, ok)
	assert.Equal(t, int64(2), cur.ID)
}

func TestPriorityPreemptive_PreemptsForMoreUrgent(t *testing.T) {
	// GIVEN a priority-3 process running
	s := startedSimulator(t, PolicyPriorityPreemptive, quietConfig(), cpuBound(3, 4))
	tickN(t, s, 1)

	// WHEN a priority-1 process arrives
	s.AddProcess(cpuBound(1, 4))
	tickN(t, s, 1)

	// THEN it preempts; a later priority-2 arrival does not
	cur, _ := s.CurrentProcess()
	assert.Equal(t, int64(2), cur.ID)
	s.AddProcess(cpuBound(2, 4))
	tickN(t, s, 1)
	cur, _ = s.CurrentProcess()
	assert.Equal(t, int64(2), cur.ID)
	assert.Equal(t, StateReady, processByID(t, s, 1).State)
}

func TestPriorityPreemptive_FinishedProcessCompletesBeforePreemptionCheck(t *testing.T) {
	// GIVEN a low-urgency burst-1 process that has finished its burst
	s := startedSimulator(t, PolicyPriorityPreemptive, quietConfig(), cpuBound(5, 1))
	tickN(t, s, 1)

	// WHEN a more urgent process arrives on the completion tick
	s.AddProcess(cpuBound(1, 2))
	tickN(t, s, 1)

	// THEN the finished process is completed, not returned to Ready
	p1 := processByID(t, s, 1)
	assert.Equal(t, StateCompleted, p1.State)
	assert.Zero(t, p1.RemainingTick)
	cur, _ := s.CurrentProcess()
	assert.Equal(t, int64(2), cur.ID)
}

func TestRandom_SameSeedSameSchedule(t *testing.T) {
	run := func() []int64 {
		s := startedSimulator(t, PolicyRandom, quietConfig(),
			cpuBound(1, 2), cpuBound(1, 2), cpuBound(1, 2), cpuBound(1, 2))
		tickN(t, s, 12)
		var order []int64
		for _, p := range s.CompletedProcesses() {
			order = append(order, p.ID)
		}
		return order
	}
	first := run()
	assert.Len(t, first, 4)
	assert.Equal(t, first, run())
}
