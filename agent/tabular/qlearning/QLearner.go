package qlearning

import (
	"fmt"
	"os"

	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/timestep"
)

// Update applies a single Q-learning update to the value of taking
// action in state, given the reward and next state observed:
//
//	Q(s, a) <- (1 - α) Q(s, a) + α (r + γ max_a' Q(s', a'))
//
// Update performs no validation of alpha and gamma.
func Update(q *tabular.QTable, state, action int, reward float64, next int,
	alpha, gamma float64) {
	target := reward + gamma*q.Max(next)
	value := (1-alpha)*q.At(state, action) + alpha*target
	q.Set(state, action, value)
}

// QLearner implements the update functionality for the Q-Learning
// algorithm.
type QLearner struct {
	table    *tabular.QTable
	step     timestep.TimeStep
	action   int
	nextStep timestep.TimeStep
	alpha    float64
	gamma    float64
}

// NewQLearner creates a new QLearner struct
//
// table holds the action values to learn
func NewQLearner(table *tabular.QTable, alpha, gamma float64) *QLearner {
	return &QLearner{table: table, alpha: alpha, gamma: gamma}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)\n", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
}

// Observe observes and records any timestep other than the first timestep
func (q *QLearner) Observe(action int, nextStep timestep.TimeStep) {
	q.step = q.nextStep
	q.action = action
	q.nextStep = nextStep
}

// Step updates the action value of the most recently observed
// transition
func (q *QLearner) Step() {
	Update(q.table, q.step.Observation, q.action, q.nextStep.Reward,
		q.nextStep.Observation, q.alpha, q.gamma)
}

// TdError returns the TD error on a transition
func (q *QLearner) TdError(t timestep.Transition) float64 {
	target := t.Reward + q.gamma*q.table.Max(t.NextState)
	return target - q.table.At(t.State, t.Action)
}

// Table returns the action values the learner updates
func (q *QLearner) Table() *tabular.QTable {
	return q.table
}
