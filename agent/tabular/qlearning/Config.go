package qlearning

import (
	"math/rand/v2"

	"github.com/samuelfneumann/treasurehunt/agent"
	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/environment"
)

// Default hyperparameters
const (
	DefaultAlpha   float64 = 0.1
	DefaultGamma   float64 = 0.99
	DefaultEpsilon float64 = 0.1
)

var _ agent.Config = Config{}

// Config represents a configuration for the QLearning agent
type Config struct {
	Alpha   float64 `json:"alpha"`   // learning rate
	Gamma   float64 `json:"gamma"`   // discount factor
	Epsilon float64 `json:"epsilon"` // epislon for behaviour policy
}

// DefaultConfig returns a Config holding the default hyperparameters
func DefaultConfig() Config {
	return Config{
		Alpha:   DefaultAlpha,
		Gamma:   DefaultGamma,
		Epsilon: DefaultEpsilon,
	}
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero using this function. To learn into an
// existing table, use the agent's constructor manually.
func (c Config) CreateAgent(env environment.Environment,
	rng *rand.Rand) (agent.Agent, error) {
	table := tabular.NewQTable(env.ObservationSpec().Size,
		env.ActionSpec().Size)

	return New(env, c, table, rng)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid. Each hyperparameter must
// be a finite number in [0, 1].
func (c Config) Validate() error {
	const op = "validate"
	if err := environment.CheckUnit(op, "alpha", c.Alpha); err != nil {
		return err
	}
	if err := environment.CheckUnit(op, "gamma", c.Gamma); err != nil {
		return err
	}
	return environment.CheckUnit(op, "epsilon", c.Epsilon)
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}
