package agent

import (
	"math/rand/v2"

	"github.com/samuelfneumann/treasurehunt/environment"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	// Tabular methods
	EGreedyQLearningTabular Type = "EGreedyQLearning-Tabular"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. All
	// random action selection draws from rng.
	CreateAgent(env environment.Environment, rng *rand.Rand) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}
