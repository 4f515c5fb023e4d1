// Package gridworld implements square 2D gridworld environments in which
// an agent searches for a treasure while tolerating trap cells
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/treasurehunt/environment"
	"github.com/samuelfneumann/treasurehunt/timestep"
)

// Action is a movement of the agent in the gridworld. The numeric value
// of an Action indexes the columns of an action-value table, so the
// enumeration order is fixed.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the number of actions available in each state
const NumActions = 4

// Actions returns all actions in enumeration order
func Actions() []Action {
	return []Action{Up, Down, Left, Right}
}

// delta returns the change in row and column caused by the action
func (a Action) delta() (int, int) {
	switch a {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	panic(fmt.Sprintf("delta: no such action %d", int(a)))
}

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid returns whether the action is one of the four movements
func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

// GridWorld represents a square gridworld environment
//
// A gridworld is represented as a flattened matrix, but in this implementation
// only the matrix dimensions and current agent position are tracked. State
// s is the cell at row s / size and column s % size.
type GridWorld struct {
	*Treasure
	size        int
	position    int
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new gridworld with the Treasure task t and discount
// factor discount. The returned TimeStep is the first step of the
// first episode.
func New(t *Treasure, discount float64) (*GridWorld, timestep.TimeStep) {
	g := &GridWorld{Treasure: t, size: t.size, discount: discount}

	return g, g.Reset()
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.size, g.size
}

// Size returns the side length of the GridWorld
func (g *GridWorld) Size() int {
	return g.size
}

// States returns the number of states in the GridWorld
func (g *GridWorld) States() int {
	return g.size * g.size
}

// Position returns the state the agent currently occupies
func (g *GridWorld) Position() int {
	return g.position
}

// Coordinates converts a state into its (row, col) coordinates
func (g *GridWorld) Coordinates(state int) (row, col int) {
	return state / g.size, state % g.size
}

// Index converts (row, col) coordinates into a state
func (g *GridWorld) Index(row, col int) int {
	return row*g.size + col
}

// Move returns the state reached by taking action a in state. A move
// that would leave the grid leaves the corresponding axis unchanged.
func (g *GridWorld) Move(state int, a Action) int {
	row, col := g.Coordinates(state)
	dr, dc := a.delta()

	if newRow := row + dr; newRow >= 0 && newRow < g.size {
		row = newRow
	}
	if newCol := col + dc; newCol >= 0 && newCol < g.size {
		col = newCol
	}
	return g.Index(row, col)
}

// Reward returns the reward for entering state
func (g *GridWorld) Reward(state int) float64 {
	return g.RewardAt(state)
}

// IsTerminal returns whether entering state ends an episode. Only the
// treasure is terminal; traps are not.
func (g *GridWorld) IsTerminal(state int) bool {
	return g.AtGoal(state)
}

// Reset resets the agent to the starting state and returns the first
// TimeStep of a new episode
func (g *GridWorld) Reset() timestep.TimeStep {
	g.position = g.Start()
	startStep := timestep.New(timestep.First, 0, g.discount, g.position, 0)
	g.currentStep = startStep
	return startStep
}

// Step takes one environmental step given action a and returns the next
// TimeStep along with whether the episode reached the treasure
func (g *GridWorld) Step(a int) (timestep.TimeStep, bool) {
	action := Action(a)
	if !action.Valid() {
		panic(fmt.Sprintf("step: no such action %d", a))
	}

	g.position = g.Move(g.position, action)

	reward := g.Reward(g.position)
	number := g.currentStep.Number + 1
	step := timestep.New(timestep.Mid, reward, g.discount, g.position, number)

	// Check if this transition is to the end state
	if g.IsTerminal(g.position) {
		step.StepType = timestep.Last
		step.SetEnd(timestep.TerminalStateReached)
	}

	g.currentStep = step
	return step, step.Last()
}

// LastTimeStep returns the most recent TimeStep of the environment
func (g *GridWorld) LastTimeStep() timestep.TimeStep {
	return g.currentStep
}

// ObservationSpec returns the observation specification of the
// environment: one discrete value per state
func (g *GridWorld) ObservationSpec() environment.Spec {
	return environment.NewDiscreteSpec(g.States(), environment.Observation)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() environment.Spec {
	return environment.NewDiscreteSpec(NumActions, environment.Action)
}

// DiscountSpec returns the discount specification of the environment
func (g *GridWorld) DiscountSpec() environment.Spec {
	return environment.NewSpec(1, environment.Discount, 0, 1,
		environment.Continuous)
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |   Task: %v  |  Bounds: (%d, %d)"
	row, col := g.Coordinates(g.position)
	position := fmt.Sprintf("(%d, %d)", row, col)

	return fmt.Sprintf(str, position, g.Treasure, g.size, g.size)
}
