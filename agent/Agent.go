// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/treasurehunt/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action values
// are updated.
//
// A Learner determines how values are changed, and therefore how a Policy
// changes over time. The Learner and Policy of an Agent should share
// the same values so that the Learner can use the transitions chosen by
// the Policy to update the values appropriately.
type Learner interface {
	// Step performs a single update to the learner
	Step()

	// Observe records that an action lead to some timestep
	Observe(action int, nextObs timestep.TimeStep)

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep)

	// TdError returns the TD error on a transition
	TdError(t timestep.Transition) float64
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. Agents usually have a
// target and behaviour policy.
type Policy interface {
	SelectAction(t timestep.TimeStep) int
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}
