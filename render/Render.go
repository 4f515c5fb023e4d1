// Package render draws treasure-hunting gridworlds, their traps and the
// greedy path of a trained agent, either to a terminal or to a PNG
// image
package render

import (
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/samuelfneumann/treasurehunt/experiment"
)

// Arrow returns the glyph drawn for an action
func Arrow(a gridworld.Action) string {
	switch a {
	case gridworld.Up:
		return "↑"
	case gridworld.Down:
		return "↓"
	case gridworld.Left:
		return "←"
	case gridworld.Right:
		return "→"
	}
	return "?"
}

// arrows maps each state on the path, except the last, to the action
// taken in that state
func arrows(g *gridworld.GridWorld, path experiment.Path) map[int]gridworld.Action {
	actions := path.Actions(g.Size())
	out := make(map[int]gridworld.Action, len(actions))
	for i, a := range actions {
		out[path.States[i]] = a
	}
	return out
}
