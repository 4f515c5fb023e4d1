package gridworld

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/treasurehunt/environment"
	"gonum.org/v1/gonum/floats"
)

// Trap is a non-terminal cell which yields its own penalty when entered
type Trap struct {
	Position int     `json:"position"`
	Penalty  float64 `json:"penalty"`
}

// Treasure represents the task of reaching the treasure in the
// bottom-right cell of a GridWorld. Entering the treasure yields the
// treasure reward and ends the episode. Entering a trap yields the
// trap's penalty but does not end the episode. Entering any other cell
// yields the step cost.
type Treasure struct {
	environment.Starter
	size     int
	position int
	reward   float64
	stepCost float64
	traps    []Trap
}

// NewTreasure creates and returns a new Treasure task for a gridworld
// with size rows and size columns. The treasure is placed in the last
// state, size*size - 1. Trap penalties are looked up in the order the
// traps are given.
func NewTreasure(s environment.Starter, size int, reward, stepCost float64,
	traps []Trap) (*Treasure, error) {
	const op = "newTreasure"

	if err := environment.CheckAtLeast(op, "grid size", size, 2); err != nil {
		return nil, err
	}
	if err := environment.CheckFinite(op, "treasure reward", reward); err != nil {
		return nil, err
	}
	if err := environment.CheckFinite(op, "step cost", stepCost); err != nil {
		return nil, err
	}

	states := size * size
	position := states - 1
	start := s.Start()
	if start < 0 || start >= states {
		return nil, environment.NewConfigurationError(op, "start",
			"state %d outside of grid with %d states", start, states)
	}
	if start == position {
		return nil, environment.NewConfigurationError(op, "start",
			"start state %d cannot be the treasure", start)
	}

	if max := MaxTraps(size); len(traps) > max {
		return nil, environment.NewConfigurationError(op, "traps",
			"%d traps exceed the maximum of %d", len(traps), max)
	}
	seen := make(map[int]bool, len(traps))
	for i, trap := range traps {
		field := fmt.Sprintf("traps[%d]", i)
		switch {
		case trap.Position < 0 || trap.Position >= states:
			return nil, environment.NewConfigurationError(op, field,
				"position %d outside of grid with %d states", trap.Position,
				states)
		case trap.Position == start:
			return nil, environment.NewConfigurationError(op, field,
				"position %d is the start state", trap.Position)
		case trap.Position == position:
			return nil, environment.NewConfigurationError(op, field,
				"position %d is the treasure", trap.Position)
		case seen[trap.Position]:
			return nil, environment.NewConfigurationError(op, field,
				"duplicate position %d", trap.Position)
		}
		if err := environment.CheckFinite(op, field, trap.Penalty); err != nil {
			return nil, err
		}
		seen[trap.Position] = true
	}

	copied := make([]Trap, len(traps))
	copy(copied, traps)

	return &Treasure{s, size, position, reward, stepCost, copied}, nil
}

// RewardAt returns the reward for entering state
func (t *Treasure) RewardAt(state int) float64 {
	if state == t.position {
		return t.reward
	}
	for _, trap := range t.traps {
		if trap.Position == state {
			return trap.Penalty
		}
	}
	return t.stepCost
}

// AtGoal returns whether state is the treasure
func (t *Treasure) AtGoal(state int) bool {
	return state == t.position
}

// IsTrap returns whether state holds a trap
func (t *Treasure) IsTrap(state int) bool {
	for _, trap := range t.traps {
		if trap.Position == state {
			return true
		}
	}
	return false
}

// TreasurePosition returns the state holding the treasure
func (t *Treasure) TreasurePosition() int {
	return t.position
}

// TreasureReward returns the reward for reaching the treasure
func (t *Treasure) TreasureReward() float64 {
	return t.reward
}

// StepCost returns the reward for entering an ordinary cell
func (t *Treasure) StepCost() float64 {
	return t.stepCost
}

// Traps returns a copy of the traps in enumeration order
func (t *Treasure) Traps() []Trap {
	traps := make([]Trap, len(t.traps))
	copy(traps, t.traps)
	return traps
}

// Min returns the minimum reward attainable in the Task
func (t *Treasure) Min() float64 {
	return floats.Min(t.rewards())
}

// Max returns the maximum reward attainable in the Task
func (t *Treasure) Max() float64 {
	return floats.Max(t.rewards())
}

func (t *Treasure) rewards() []float64 {
	rewards := []float64{t.stepCost, t.reward}
	for _, trap := range t.traps {
		rewards = append(rewards, trap.Penalty)
	}
	return rewards
}

// String returns the Treasure as a string
func (t *Treasure) String() string {
	positions := make([]string, len(t.traps))
	for i, trap := range t.traps {
		positions[i] = fmt.Sprintf("%d:%v", trap.Position, trap.Penalty)
	}
	return fmt.Sprintf("Treasure %d (%v) | Traps [%v]", t.position, t.reward,
		strings.Join(positions, " "))
}
