// Package policy implements policies which act on tables of action
// values
package policy

import (
	"math/rand/v2"

	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/timestep"
)

// SelectAction selects an action from an ε-greedy distribution over the
// action values qRow. With probability epsilon an action is drawn
// uniformly at random, otherwise the greedy action is taken.
//
// When epsilon is not positive no random numbers are drawn from rng.
func SelectAction(qRow []float64, epsilon float64, rng *rand.Rand) int {
	if epsilon > 0 && rng.Float64() < epsilon {
		return rng.IntN(len(qRow))
	}
	return Greedy(qRow)
}

// EGreedy implements an ε-greedy policy over a table of action values
type EGreedy struct {
	table   *tabular.QTable
	epsilon float64
	rng     *rand.Rand
	eval    bool
}

// NewEGreedy constructs a new EGreedy policy, where e=epislon is the
// probability with which a random action is selected. The policy acts
// on the values stored in table, which may be shared with a learner.
func NewEGreedy(e float64, rng *rand.Rand, table *tabular.QTable) *EGreedy {
	return &EGreedy{table: table, epsilon: e, rng: rng}
}

// SelectAction selects an action from an ε-greedy policy in the state
// observed at t. In evaluation mode the greedy action is always taken.
func (p *EGreedy) SelectAction(t timestep.TimeStep) int {
	return SelectAction(p.table.Row(t.Observation), p.Epsilon(), p.rng)
}

// Epsilon returns the current probability of taking a random action
func (p *EGreedy) Epsilon() float64 {
	if p.eval {
		return 0
	}
	return p.epsilon
}

// Table returns the action values the policy acts on
func (p *EGreedy) Table() *tabular.QTable {
	return p.table
}

// Eval sets the policy to evaluation mode, in which it acts greedily
func (p *EGreedy) Eval() {
	p.eval = true
}

// Train sets the policy to training mode
func (p *EGreedy) Train() {
	p.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool {
	return p.eval
}
