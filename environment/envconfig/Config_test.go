package envconfig

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	env "github.com/samuelfneumann/treasurehunt/environment"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 16, c.States())
	assert.Equal(t, 1, c.TrapCount())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]func(c *Config){
		"grid too small":     func(c *Config) { c.GridSize = 1 },
		"no steps":           func(c *Config) { c.MaxSteps = 0 },
		"negative traps":     func(c *Config) { c.NumTraps = -1 },
		"too many traps":     func(c *Config) { c.NumTraps = 15 },
		"infinite penalty":   func(c *Config) { c.TrapPenalty = math.Inf(-1) },
		"NaN reward":         func(c *Config) { c.TreasureReward = math.NaN() },
		"infinite step cost": func(c *Config) { c.StepCost = math.Inf(1) },
		"trap on treasure": func(c *Config) {
			c.Traps = []gridworld.Trap{{Position: 15, Penalty: -10}}
		},
		"trap on start": func(c *Config) {
			c.Traps = []gridworld.Trap{{Position: 0, Penalty: -10}}
		},
	}
	for name, modify := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := Default()
			modify(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, env.IsConfigurationError(err), "got %v", err)
		})
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	c := Default()
	c.GridSize = 5
	c.NumTraps = 6
	g, step, err := c.Create(rand.NewPCG(3, 4), 0.9)
	require.NoError(t, err)
	assert.Equal(t, 25, g.States())
	assert.Len(t, g.Traps(), 6)
	assert.Equal(t, 24, g.TreasurePosition())
	assert.True(t, step.First())
	assert.Equal(t, 0, step.Observation)
}

func TestCreateUsesExplicitTraps(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Traps = []gridworld.Trap{{Position: 5, Penalty: -10},
		{Position: 9, Penalty: -3}}
	g, _, err := c.Create(rand.NewPCG(1, 1), 0.99)
	require.NoError(t, err)

	if diff := cmp.Diff(c.Traps, g.Traps()); diff != "" {
		t.Errorf("traps mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, -3.0, g.Reward(9))
}

func TestConfigJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{"grid_size": 6, "num_traps": 3, "max_steps": 20,
		"traps": [{"position": 7, "penalty": -5}]}`)
	c := Default()
	require.NoError(t, json.Unmarshal(data, &c))

	assert.Equal(t, 6, c.GridSize)
	assert.Equal(t, 20, c.MaxSteps)
	assert.Equal(t, DefaultStepCost, c.StepCost)
	assert.Equal(t, 1, c.TrapCount())
	require.NoError(t, c.Validate())
}
