package main

import (
	"fmt"

	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/samuelfneumann/treasurehunt/experiment"
	"github.com/spf13/cobra"
)

// configFlags holds the command-line flags shared by all commands which
// build an experiment.Config. Flags override values read from the
// config file, which in turn override the defaults.
type configFlags struct {
	file string

	gridSize       int
	numTraps       int
	traps          []int
	trapPenalty    float64
	treasureReward float64
	stepCost       float64
	maxSteps       int

	alpha   float64
	gamma   float64
	epsilon float64

	episodes       int
	reportInterval int
	seed           uint64
}

// bind registers the flags with cmd
func (f *configFlags) bind(cmd *cobra.Command) {
	d := experiment.DefaultConfig()
	flags := cmd.Flags()

	flags.StringVarP(&f.file, "config", "c", "", "JSON config file")

	flags.IntVar(&f.gridSize, "grid-size", d.Env.GridSize,
		"Number of rows and columns of the grid")
	flags.IntVar(&f.numTraps, "traps", d.Env.NumTraps,
		"Number of randomly placed traps")
	flags.IntSliceVar(&f.traps, "trap", nil,
		"Place a trap at this state (repeatable, overrides --traps)")
	flags.Float64Var(&f.trapPenalty, "trap-penalty", d.Env.TrapPenalty,
		"Reward for entering a trap")
	flags.Float64Var(&f.treasureReward, "treasure-reward",
		d.Env.TreasureReward, "Reward for reaching the treasure")
	flags.Float64Var(&f.stepCost, "step-cost", d.Env.StepCost,
		"Reward for entering any other cell")
	flags.IntVar(&f.maxSteps, "max-steps", d.Env.MaxSteps,
		"Maximum number of steps per episode")

	flags.Float64Var(&f.alpha, "alpha", d.Agent.Alpha, "Learning rate")
	flags.Float64Var(&f.gamma, "gamma", d.Agent.Gamma, "Discount factor")
	flags.Float64Var(&f.epsilon, "epsilon", d.Agent.Epsilon,
		"Exploration rate")

	flags.IntVar(&f.episodes, "episodes", d.Episodes,
		"Number of training episodes")
	flags.IntVar(&f.reportInterval, "report-interval", d.ReportInterval,
		"Episodes between progress reports")
	flags.Uint64Var(&f.seed, "seed", d.Seed,
		"Seed for trap placement and exploration")
}

// config builds the experiment.Config described by the config file and
// every flag set on cmd
func (f *configFlags) config(cmd *cobra.Command) (experiment.Config, error) {
	c := experiment.DefaultConfig()
	if f.file != "" {
		var err error
		if c, err = experiment.LoadConfig(f.file); err != nil {
			return experiment.Config{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("grid-size") {
		c.Env.GridSize = f.gridSize
	}
	if changed("traps") {
		c.Env.NumTraps = f.numTraps
		c.Env.Traps = nil
	}
	if changed("trap-penalty") {
		c.Env.TrapPenalty = f.trapPenalty
	}
	if changed("trap") {
		c.Env.Traps = make([]gridworld.Trap, len(f.traps))
		for i, position := range f.traps {
			c.Env.Traps[i] = gridworld.Trap{Position: position,
				Penalty: c.Env.TrapPenalty}
		}
	}
	if changed("treasure-reward") {
		c.Env.TreasureReward = f.treasureReward
	}
	if changed("step-cost") {
		c.Env.StepCost = f.stepCost
	}
	if changed("max-steps") {
		c.Env.MaxSteps = f.maxSteps
	}
	if changed("alpha") {
		c.Agent.Alpha = f.alpha
	}
	if changed("gamma") {
		c.Agent.Gamma = f.gamma
	}
	if changed("epsilon") {
		c.Agent.Epsilon = f.epsilon
	}
	if changed("episodes") {
		c.Episodes = f.episodes
	}
	if changed("report-interval") {
		c.ReportInterval = f.reportInterval
	}
	if changed("seed") {
		c.Seed = f.seed
	}

	if err := c.Validate(); err != nil {
		return experiment.Config{}, fmt.Errorf("invalid configuration: %w",
			err)
	}
	return c, nil
}
