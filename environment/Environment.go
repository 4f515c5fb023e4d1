// Package environment outlines the interfaces and structs needed to
// implement concrete discrete environments
package environment

import "github.com/samuelfneumann/treasurehunt/timestep"

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() int
}

// Ender determines when episodes should be ended
type Ender interface {
	// End checks whether an episode should end and modifies the
	// argument TimeStep to be the last in its episode if so
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for entering states of some
// environment
type Task interface {
	Starter

	// RewardAt returns the reward for entering state
	RewardAt(state int) float64

	// AtGoal returns whether state is a terminal goal state
	AtGoal(state int) bool

	// Min and Max return the bounds of the rewards the Task can produce
	Min() float64
	Max() float64
}

// Environment implements a simualted environment, which includes a Task to
// complete
type Environment interface {
	Task
	Reset() timestep.TimeStep // Resets between episodes
	Step(action int) (timestep.TimeStep, bool)
	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}
