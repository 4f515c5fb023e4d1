package experiment

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samuelfneumann/treasurehunt/agent/tabular/qlearning"
	env "github.com/samuelfneumann/treasurehunt/environment"
	"github.com/samuelfneumann/treasurehunt/environment/envconfig"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/samuelfneumann/treasurehunt/experiment/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trapAtFive returns the Config of a 4x4 grid with a single trap at
// state 5
func trapAtFive() Config {
	c := DefaultConfig()
	c.Env.Traps = []gridworld.Trap{{Position: 5, Penalty: -10}}
	c.Seed = 2024
	return c
}

// ignoreElapsed ignores wall-clock times when comparing Statistics
var ignoreElapsed = cmpopts.IgnoreFields(Report{}, "Elapsed")

func TestSessionLearnsToFindTreasure(t *testing.T) {
	t.Parallel()
	s, err := NewSession(trapAtFive())
	require.NoError(t, err)

	stats, err := s.Train()
	require.NoError(t, err)

	require.Len(t, stats.History, 1000)
	assert.Greater(t, stats.Final.SuccessRate, 50.0)
	assert.Len(t, stats.Reports, 10)

	path := s.GreedyPath()
	assert.True(t, path.Reached, "greedy path %v", path.States)
	assert.Equal(t, 15, path.States[len(path.States)-1])
	assert.Equal(t, 0, path.States[0])
	assert.LessOrEqual(t, path.Len(), 9)
}

func TestSessionIsDeterministic(t *testing.T) {
	t.Parallel()
	c := DefaultConfig()
	c.Env.NumTraps = 3
	c.Episodes = 300
	c.Seed = 99

	a, err := NewSession(c)
	require.NoError(t, err)
	b, err := NewSession(c)
	require.NoError(t, err)
	assert.Equal(t, a.Traps(), b.Traps())
	assert.NotEqual(t, a.ID(), b.ID())

	statsA, err := a.Train()
	require.NoError(t, err)
	statsB, err := b.Train()
	require.NoError(t, err)

	assert.True(t, a.QTable().Equal(b.QTable()))
	if diff := cmp.Diff(statsA, statsB, ignoreElapsed); diff != "" {
		t.Errorf("statistics mismatch (-a +b):\n%s", diff)
	}

	// Training again starts from a fresh table
	statsAgain, err := a.Train()
	require.NoError(t, err)
	assert.True(t, a.QTable().Equal(b.QTable()))
	if diff := cmp.Diff(statsA, statsAgain, ignoreElapsed); diff != "" {
		t.Errorf("retraining changed statistics (-first +second):\n%s", diff)
	}
}

func TestReconfigureValidatesBeforeCommitting(t *testing.T) {
	t.Parallel()
	c := trapAtFive()
	c.Episodes = 50
	s, err := NewSession(c)
	require.NoError(t, err)
	_, err = s.Train()
	require.NoError(t, err)

	before := s.QTable()
	traps := s.Traps()
	config := s.Config()

	bad := c
	bad.Agent.Alpha = 2
	err = s.Reconfigure(bad)
	require.Error(t, err)
	assert.True(t, env.IsConfigurationError(err))

	bad = c
	bad.Env.Traps = nil
	bad.Env.NumTraps = 20
	err = s.Reconfigure(bad)
	require.Error(t, err)
	assert.True(t, env.IsConfigurationError(err))
	assert.ErrorContains(t, err, "num_traps")

	assert.True(t, before.Equal(s.QTable()))
	assert.Equal(t, traps, s.Traps())
	if diff := cmp.Diff(config, s.Config()); diff != "" {
		t.Errorf("config changed (-before +after):\n%s", diff)
	}
}

func TestReconfigureResizes(t *testing.T) {
	t.Parallel()
	s, err := NewSession(trapAtFive())
	require.NoError(t, err)

	c := DefaultConfig()
	c.Env.GridSize = 6
	c.Env.NumTraps = 5
	require.NoError(t, s.Reconfigure(c))

	states, actions := s.QTable().Dims()
	assert.Equal(t, 36, states)
	assert.Equal(t, gridworld.NumActions, actions)
	assert.Len(t, s.Traps(), 5)
	assert.Equal(t, 35, s.Treasure())
	assert.Empty(t, s.Statistics().History)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	c := DefaultConfig()
	c.Episodes = 0
	_, err := NewSession(c)
	require.Error(t, err)
	assert.True(t, env.IsConfigurationError(err))
}

func TestEpisodesRespectStepLimit(t *testing.T) {
	t.Parallel()
	c := trapAtFive()
	c.Env.MaxSteps = 3
	c.Episodes = 100
	s, err := NewSession(c)
	require.NoError(t, err)

	stats, err := s.Train()
	require.NoError(t, err)
	for _, ep := range stats.History {
		assert.LessOrEqual(t, ep.Steps, 3)
		// The treasure is at least six steps away
		assert.False(t, ep.Success)
	}
	assert.Zero(t, stats.Final.SuccessRate)
}

func TestTrackersMatchStatistics(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := trapAtFive()
	c.Episodes = 200

	s, err := NewSession(c)
	require.NoError(t, err)
	returns := tracker.NewReturn(filepath.Join(dir, "returns.bin"))
	lengths := tracker.NewEpisodeLength(filepath.Join(dir, "lengths.bin"))
	s.Register(returns)
	s.Register(lengths)
	s.CheckpointEvery(100, dir, "q")

	var reports []Report
	s.OnReport(func(r Report) { reports = append(reports, r) })

	stats, err := s.Train()
	require.NoError(t, err)

	assert.Equal(t, stats.Rewards(), returns.Data())
	assert.Equal(t, stats.Steps(), lengths.Data())
	if diff := cmp.Diff(stats.Reports, reports, ignoreElapsed); diff != "" {
		t.Errorf("reports mismatch (-stats +callback):\n%s", diff)
	}

	saved, err := tracker.LoadData(filepath.Join(dir, "returns.bin"))
	require.NoError(t, err)
	assert.Equal(t, stats.Rewards(), saved)

	for _, name := range []string{"q1.gob", "q2.gob"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "checkpoint %s", name)
	}
}

func TestEpisodicRecordsTrapVisits(t *testing.T) {
	t.Parallel()
	c := envconfig.Default()
	c.Traps = []gridworld.Trap{{Position: 4, Penalty: -10}}
	g, _, err := c.Create(rand.NewPCG(1, 1), 0.99)
	require.NoError(t, err)

	// Greedy on a zero table at the start moves Up; make Down the best
	// action so that the first step enters the trap at state 4
	agentConfig := qlearning.Config{Alpha: 0, Gamma: 0.99, Epsilon: 0}
	a, err := agentConfig.CreateAgent(g, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	table := a.(*qlearning.QLearning).Table()
	table.Set(0, int(gridworld.Down), 1)

	e := NewEpisodic(g, a, 2, 5, 1)
	ep := e.RunEpisode()
	assert.True(t, ep.TrapVisited)
	assert.False(t, ep.Success)
	assert.Equal(t, 1, ep.Episode)
	// Down into the trap, then Up and Down between states 0 and 4
	assert.Equal(t, 5, ep.Steps)
	assert.Equal(t, -10.0*3+(-1.0)*2, ep.Reward)
}

func TestNewEpisodicPanicsOnInvalidArguments(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewEpisodic(nil, nil, 0, 1, 1) })
	assert.Panics(t, func() { NewEpisodic(nil, nil, 1, 0, 1) })
	assert.Panics(t, func() { NewEpisodic(nil, nil, 1, 1, 0) })
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "config.json")
	data := `{"environment": {"grid_size": 5, "num_traps": 2},
		"agent": {"epsilon": 0.2}, "episodes": 500, "seed": 7}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Env.GridSize)
	assert.Equal(t, 2, c.Env.NumTraps)
	assert.Equal(t, envconfig.DefaultMaxSteps, c.Env.MaxSteps)
	assert.Equal(t, 0.2, c.Agent.Epsilon)
	assert.Equal(t, qlearning.DefaultAlpha, c.Agent.Alpha)
	assert.Equal(t, 500, c.Episodes)
	assert.Equal(t, DefaultReportInterval, c.ReportInterval)
	assert.Equal(t, uint64(7), c.Seed)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	yaml := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yaml, []byte("{}"), 0o644))
	_, err := LoadConfig(yaml)
	assert.ErrorContains(t, err, ".json")

	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	large := filepath.Join(dir, "large.json")
	padding := strings.Repeat(" ", int(maxConfigSize)+1)
	require.NoError(t, os.WriteFile(large, []byte("{"+padding+"}"), 0o644))
	_, err = LoadConfig(large)
	assert.ErrorContains(t, err, "too large")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid,
		[]byte(`{"agent": {"gamma": 3}}`), 0o644))
	_, err = LoadConfig(invalid)
	assert.True(t, env.IsConfigurationError(err))

	text := filepath.Join(dir, "text.json")
	require.NoError(t, os.WriteFile(text,
		[]byte(`{"agent": {"alpha": "abc"}}`), 0o644))
	_, err = LoadConfig(text)
	require.True(t, env.IsConfigurationError(err))
	var cfgErr *env.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "agent.alpha", cfgErr.Field)
	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)

	malformed := filepath.Join(dir, "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"episodes": `),
		0o644))
	_, err = LoadConfig(malformed)
	assert.True(t, env.IsConfigurationError(err))
}

func BenchmarkTrain(b *testing.B) {
	c := trapAtFive()
	s, err := NewSession(c)
	require.NoError(b, err)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Train(); err != nil {
			b.Fatal(err)
		}
	}
}
