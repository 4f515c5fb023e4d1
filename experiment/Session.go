package experiment

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/samuelfneumann/treasurehunt/agent/tabular"
	"github.com/samuelfneumann/treasurehunt/agent/tabular/qlearning"
	"github.com/samuelfneumann/treasurehunt/environment/gridworld"
	"github.com/samuelfneumann/treasurehunt/experiment/checkpointer"
	"github.com/samuelfneumann/treasurehunt/experiment/tracker"
)

// Streams of the PCG generators seeded by Config.Seed. Trap placement
// and exploration draw from separate streams.
const (
	trapStream        uint64 = 0x7472617073     // "traps"
	explorationStream uint64 = 0x6578706c6f7265 // "explore"
)

// Session owns a gridworld, its trap layout and a Q-table, and trains
// a Q-learning agent on them. A Session is not safe for concurrent
// use; readers such as displays should work on the snapshots returned
// by its accessors.
type Session struct {
	id     uuid.UUID
	config Config
	env    *gridworld.GridWorld
	table  *tabular.QTable
	stats  Statistics

	trackers    []tracker.Tracker
	checkpoints []checkpoint
	reporters   []Reporter
}

// checkpoint describes where and how often the Q-table is saved
type checkpoint struct {
	every       int
	dir, prefix string
}

// NewSession returns a new Session for the Config. Traps are placed
// immediately, and the Q-table starts at zero.
func NewSession(c Config) (*Session, error) {
	s := &Session{id: uuid.New()}
	if err := s.Reconfigure(c); err != nil {
		return nil, fmt.Errorf("newSession: %w", err)
	}
	return s, nil
}

// Reconfigure replaces the Session's Config. The Config is validated
// before anything is changed: if it is invalid, the Session keeps its
// previous Config, traps and Q-table. Otherwise traps are redrawn and
// the Q-table and statistics are reset.
func (s *Session) Reconfigure(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	g, _, err := c.Env.Create(rand.NewPCG(c.Seed, trapStream), c.Agent.Gamma)
	if err != nil {
		return err
	}

	s.config = c
	s.env = g
	s.table = tabular.NewQTable(g.States(), gridworld.NumActions)
	s.stats = Statistics{}
	return nil
}

// Train resets the Q-table and trains a new agent for the configured
// number of episodes. The returned Statistics are also kept by the
// Session.
func (s *Session) Train() (Statistics, error) {
	s.table.Reset()

	rng := rand.New(rand.NewPCG(s.config.Seed, explorationStream))
	agent, err := qlearning.New(s.env, s.config.Agent, s.table, rng)
	if err != nil {
		return Statistics{}, fmt.Errorf("train: %w", err)
	}

	exp := NewEpisodic(s.env, agent, s.config.Episodes,
		s.config.Env.MaxSteps, s.config.ReportInterval, s.trackers...)
	for _, c := range s.checkpoints {
		name := checkpointer.Numbered(c.dir, c.prefix)
		exp.Checkpoint(checkpointer.NewNEpisode(c.every, s.table, name))
	}
	for _, r := range s.reporters {
		exp.OnReport(r)
	}

	s.stats = exp.Run()
	if err := exp.Save(); err != nil {
		return s.stats, fmt.Errorf("train: %w", err)
	}
	return s.stats, nil
}

// Register registers a tracker.Tracker for every subsequent call to
// Train
func (s *Session) Register(t tracker.Tracker) {
	s.trackers = append(s.trackers, t)
}

// CheckpointEvery saves the Q-table every n episodes of subsequent
// training runs, to files dir/prefix1.gob, dir/prefix2.gob, ...
func (s *Session) CheckpointEvery(n int, dir, prefix string) {
	if n < 1 {
		panic(fmt.Sprintf("checkpointEvery: interval must be positive, "+
			"got %d", n))
	}
	s.checkpoints = append(s.checkpoints, checkpoint{n, dir, prefix})
}

// OnReport registers a Reporter for every subsequent call to Train
func (s *Session) OnReport(r Reporter) {
	s.reporters = append(s.reporters, r)
}

// ID returns the unique identifier of the Session
func (s *Session) ID() string {
	return s.id.String()
}

// Config returns the Session's current Config with the placed traps
// filled in, so that reconfiguring with it keeps the trap layout
func (s *Session) Config() Config {
	c := s.config
	c.Env.Traps = s.env.Traps()
	return c
}

// Environment returns the Session's gridworld
func (s *Session) Environment() *gridworld.GridWorld {
	return s.env
}

// Traps returns the Session's traps in the order they were placed
func (s *Session) Traps() []gridworld.Trap {
	return s.env.Traps()
}

// Treasure returns the state holding the treasure
func (s *Session) Treasure() int {
	return s.env.TreasurePosition()
}

// QTable returns a snapshot of the Session's Q-table
func (s *Session) QTable() *tabular.QTable {
	return s.table.Snapshot()
}

// Statistics returns the Statistics of the most recent training run
func (s *Session) Statistics() Statistics {
	return s.stats
}

// GreedyPath returns the greedy path under the Session's current
// Q-table
func (s *Session) GreedyPath() Path {
	return GreedyPath(s.table, s.env)
}
