package experiment

import (
	"fmt"

	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/agent/tabular/policy"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
)

// Path is a sequence of states visited by following the greedy policy
// from the start state
type Path struct {
	States  []int `json:"states"`
	Reached bool  `json:"reached"` // whether the path ends at the treasure
}

// GreedyPath follows the greedy policy of q from the start state of g
// and returns the states visited, in order. The walk stops when the
// treasure is entered, when the greedy action leaves the agent in
// place, or when the next state has already been visited. No state is
// therefore listed twice, and a path never holds more than g.States()
// states.
//
// GreedyPath panics if q does not have one row per state of g and one
// column per action.
func GreedyPath(q *tabular.QTable, g *gridworld.GridWorld) Path {
	q.MustMatch(g.States(), gridworld.NumActions)

	state := g.Start()
	visited := make(map[int]bool, g.States())
	var path Path
	for {
		path.States = append(path.States, state)
		if g.IsTerminal(state) {
			path.Reached = true
			return path
		}
		visited[state] = true

		action := gridworld.Action(policy.Greedy(q.Row(state)))
		next := g.Move(state, action)
		if next == state || visited[next] {
			return path
		}
		state = next
	}
}

// Len returns the number of states on the path
func (p Path) Len() int {
	return len(p.States)
}

// Actions returns the action taken between each pair of consecutive
// states of the path in a grid with size rows and columns
func (p Path) Actions(size int) []gridworld.Action {
	if len(p.States) < 2 {
		return nil
	}
	actions := make([]gridworld.Action, 0, len(p.States)-1)
	for i := 1; i < len(p.States); i++ {
		from, to := p.States[i-1], p.States[i]
		var a gridworld.Action
		switch to - from {
		case -size:
			a = gridworld.Up
		case size:
			a = gridworld.Down
		case -1:
			a = gridworld.Left
		case 1:
			a = gridworld.Right
		default:
			panic(fmt.Sprintf("actions: states %d and %d are not adjacent",
				from, to))
		}
		actions = append(actions, a)
	}
	return actions
}

func (p Path) String() string {
	return fmt.Sprintf("Path %v | Reached: %v", p.States, p.Reached)
}
