// Package qlearning implements the tabular Q-Learning algorithm.
//
// A QLearning agent acts with an ε-greedy behaviour policy and learns
// off-policy with a max backup. The policy and the learner share a
// single tabular.QTable.
package qlearning

import (
	"math/rand/v2"

	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/agent/tabular/policy"
	"github.com/samuelfneumann/treasurehunt/environment"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*QLearner
	*policy.EGreedy
}

// New creates a new QLearning agent for env which learns the values in
// table. The table must have one row per state of env and one column
// per action; a table of any other shape causes a panic. Exploration
// draws random numbers from rng.
func New(env environment.Environment, c Config, table *tabular.QTable,
	rng *rand.Rand) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	states := env.ObservationSpec().Size
	actions := env.ActionSpec().Size
	table.MustMatch(states, actions)

	behaviour := policy.NewEGreedy(c.Epsilon, rng, table)
	learner := NewQLearner(table, c.Alpha, c.Gamma)

	return &QLearning{learner, behaviour}, nil
}

// Table returns the action values learned by the agent
func (q *QLearning) Table() *tabular.QTable {
	return q.QLearner.Table()
}
