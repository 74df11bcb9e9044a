package sim

import (
	"errors"
	"fmt"
	"sort"
)

// Policy decides, once per tick, which process occupies the CPU.
// A policy may leave the running process alone, preempt it, block it for I/O,
// complete it and dispatch a replacement, or leave the CPU idle.
// Policies hold no simulation state; everything they need comes through the CPU handle.
type Policy interface {
	Name() string
	Decide(cpu *CPU)
}

// Recognized policy names.
const (
	PolicyFCFS               = "fcfs"
	PolicySJF                = "sjf"
	PolicyPriority           = "priority"
	PolicyRandom             = "random"
	PolicyRoundRobin         = "round-robin"
	PolicySRTF               = "srtf"
	PolicyPriorityPreemptive = "priority-preemptive"
)

// ErrUnknownPolicy is returned when a policy name is not recognized.
var ErrUnknownPolicy = errors.New("unknown scheduling policy")

// ValidPolicies is the set of recognized policy names.
// Shared by IsValidPolicy() and NewPolicy() to avoid duplication.
var ValidPolicies = map[string]bool{
	PolicyFCFS:               true,
	PolicySJF:                true,
	PolicyPriority:           true,
	PolicyRandom:             true,
	PolicyRoundRobin:         true,
	PolicySRTF:               true,
	PolicyPriorityPreemptive: true,
}

// IsValidPolicy returns true if name is a recognized policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// ValidPolicyNames returns the recognized policy names in sorted order.
func ValidPolicyNames() []string {
	names := make([]string, 0, len(ValidPolicies))
	for name := range ValidPolicies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPreemptive reports whether the named policy may take the CPU from an unfinished process.
func IsPreemptive(name string) bool {
	switch name {
	case PolicyRoundRobin, PolicySRTF, PolicyPriorityPreemptive:
		return true
	}
	return false
}

// NewPolicy creates a Policy by name.
// Unrecognized names (including the empty string) return an error wrapping
// ErrUnknownPolicy; there is no silent default.
func NewPolicy(name string) (Policy, error) {
	if !IsValidPolicy(name) {
		return nil, fmt.Errorf("%w %q (valid: %v)", ErrUnknownPolicy, name, ValidPolicyNames())
	}
	switch name {
	case PolicyFCFS:
		return &RunToCompletion{name: name, ordering: fixedOrdering(ArrivalOrdering{})}, nil
	case PolicySJF:
		return &RunToCompletion{name: name, ordering: fixedOrdering(BurstOrdering{}), blockOnIO: true}, nil
	case PolicyPriority:
		return &RunToCompletion{name: name, ordering: fixedOrdering(PriorityOrdering{})}, nil
	case PolicyRandom:
		return &RunToCompletion{name: name, ordering: randomOrdering}, nil
	case PolicyRoundRobin:
		return &RoundRobin{}, nil
	case PolicySRTF:
		return &ShortestRemainingFirst{}, nil
	case PolicyPriorityPreemptive:
		return &PriorityPreemptive{}, nil
	default:
		return nil, fmt.Errorf("unhandled policy %q", name)
	}
}

// orderingFunc resolves the queue ordering for one decision.
// Most orderings are fixed; random selection needs the policy RNG.
type orderingFunc func(cpu *CPU) QueueOrdering

func fixedOrdering(o QueueOrdering) orderingFunc {
	return func(*CPU) QueueOrdering { return o }
}

func randomOrdering(cpu *CPU) QueueOrdering {
	return RandomOrdering{Rng: cpu.Rand()}
}
