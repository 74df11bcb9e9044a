package sim

// RunToCompletion is the shared shape of the non-preemptive policies
// (first-come-first-served, shortest-job-first, priority, random):
//
//  1. idle CPU: dispatch the best ready candidate;
//  2. running process with ticks left: keep it;
//  3. running process finished: complete it and dispatch the next candidate.
//
// Only shortest-job-first applies the mid-burst I/O blocking rule; the other
// three run every process to completion regardless of its I/O episode.
type RunToCompletion struct {
	name      string
	ordering  orderingFunc
	blockOnIO bool
}

func (r *RunToCompletion) Name() string { return r.name }

func (r *RunToCompletion) Decide(cpu *CPU) {
	ordering := r.ordering(cpu)
	current := cpu.Current()
	if current == nil {
		cpu.DispatchNext(ordering, "cpu idle")
		return
	}
	if r.blockOnIO && cpu.ShouldBlock() {
		cpu.Block("io point reached")
		cpu.DispatchNext(ordering, "previous process blocked")
		return
	}
	if current.RemainingTick > 0 {
		return
	}
	cpu.Complete("burst finished")
	cpu.DispatchNext(ordering, "previous process completed")
}
