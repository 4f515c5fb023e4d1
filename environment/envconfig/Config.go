// Package envconfig provides configuration structs for configuring
// treasure-hunting gridworlds with default rewards and trap layouts.
// Environment configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"
	"math/rand/v2"

	env "github.com/samuelfneumann/treasurehunt/environment"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	ts "github.com/samuelfneumann/treasurehunt/timestep"
)

// Default environment parameters
const (
	DefaultGridSize       int     = 4
	DefaultNumTraps       int     = 1
	DefaultTreasureReward float64 = 10
	DefaultTrapPenalty    float64 = -10
	DefaultStepCost       float64 = -1
	DefaultMaxSteps       int     = 8
)

// Config implements a specific configuration of a treasure-hunting
// gridworld.
//
// If Traps is non-empty, those traps are used as given and NumTraps and
// TrapPenalty are ignored. Otherwise NumTraps traps with penalty
// TrapPenalty are placed at random when the environment is created.
type Config struct {
	GridSize       int              `json:"grid_size"`
	NumTraps       int              `json:"num_traps"`
	TrapPenalty    float64          `json:"trap_penalty"`
	Traps          []gridworld.Trap `json:"traps,omitempty"`
	TreasureReward float64          `json:"treasure_reward"`
	StepCost       float64          `json:"step_cost"`
	MaxSteps       int              `json:"max_steps"`
}

// Default returns the default environment Config: a 4x4 grid with a
// single random trap
func Default() Config {
	return Config{
		GridSize:       DefaultGridSize,
		NumTraps:       DefaultNumTraps,
		TrapPenalty:    DefaultTrapPenalty,
		TreasureReward: DefaultTreasureReward,
		StepCost:       DefaultStepCost,
		MaxSteps:       DefaultMaxSteps,
	}
}

// States returns the number of states of the configured gridworld
func (c Config) States() int {
	return c.GridSize * c.GridSize
}

// TrapCount returns the number of traps the configured gridworld will
// hold
func (c Config) TrapCount() int {
	if len(c.Traps) > 0 {
		return len(c.Traps)
	}
	return c.NumTraps
}

// Validate returns a *environment.ConfigurationError describing the
// first invalid field of the Config, or nil if the Config is valid.
func (c Config) Validate() error {
	const op = "validate"

	if err := env.CheckAtLeast(op, "grid_size", c.GridSize, 2); err != nil {
		return err
	}
	if err := env.CheckAtLeast(op, "max_steps", c.MaxSteps, 1); err != nil {
		return err
	}
	if err := env.CheckAtLeast(op, "num_traps", c.NumTraps, 0); err != nil {
		return err
	}
	if max := gridworld.MaxTraps(c.GridSize); c.TrapCount() > max {
		return env.NewConfigurationError(op, "num_traps",
			"must be at most %d for a %dx%d grid, got %d", max, c.GridSize,
			c.GridSize, c.TrapCount())
	}
	if err := env.CheckFinite(op, "trap_penalty", c.TrapPenalty); err != nil {
		return err
	}
	if err := env.CheckFinite(op, "treasure_reward", c.TreasureReward); err != nil {
		return err
	}
	if err := env.CheckFinite(op, "step_cost", c.StepCost); err != nil {
		return err
	}

	// Explicit traps are checked by constructing the task
	if len(c.Traps) > 0 {
		start, err := gridworld.NewSingleStart(0, 0, c.GridSize)
		if err != nil {
			return err
		}
		_, err = gridworld.NewTreasure(start, c.GridSize, c.TreasureReward,
			c.StepCost, c.Traps)
		return err
	}
	return nil
}

// Create returns the gridworld described by the Config as well as the
// first timestep of the environment. Random traps are drawn from src.
func (c Config) Create(src rand.Source, discount float64) (*gridworld.GridWorld,
	ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, err
	}

	traps := c.Traps
	if len(traps) == 0 {
		var err error
		traps, err = gridworld.GenerateTraps(c.GridSize, c.NumTraps,
			c.TrapPenalty, src)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
	}

	start, err := gridworld.NewSingleStart(0, 0, c.GridSize)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	task, err := gridworld.NewTreasure(start, c.GridSize, c.TreasureReward,
		c.StepCost, traps)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	g, step := gridworld.New(task, discount)
	return g, step, nil
}
