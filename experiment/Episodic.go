package experiment

import (
	"fmt"
	"log"
	"time"

	"github.com/samuelfneumann/treasurehunt/agent"
	env "github.com/samuelfneumann/treasurehunt/environment"
	"github.com/samuelfneumann/treasurehunt/experiment/checkpointer"
	"github.com/samuelfneumann/treasurehunt/experiment/tracker"
	ts "github.com/samuelfneumann/treasurehunt/timestep"
)

// trapper is an environment with trap states
type trapper interface {
	IsTrap(state int) bool
}

var _ Experiment = (*Episodic)(nil)

// Episodic is an Experiment that runs an agent online for a fixed
// number of episodes, each cut off after a fixed number of steps.
type Episodic struct {
	env.Environment
	agent.Agent
	episodes      int
	limit         env.Ender
	interval      int
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	reporters     []Reporter

	history []EpisodeStats
	reports []Report
	start   time.Time
}

// NewEpisodic creates and returns a new episodic experiment on a given
// environment with a given agent. The experiment runs for episodes
// episodes of at most maxSteps steps and produces a Report every
// interval episodes. The trackers t determine which timestep data is
// saved.
func NewEpisodic(e env.Environment, a agent.Agent, episodes, maxSteps,
	interval int, t ...tracker.Tracker) *Episodic {
	if episodes < 1 || maxSteps < 1 || interval < 1 {
		panic(fmt.Sprintf("newEpisodic: episodes (%d), max steps (%d) and "+
			"interval (%d) must be positive", episodes, maxSteps, interval))
	}
	return &Episodic{
		Environment: e,
		Agent:       a,
		episodes:    episodes,
		limit:       env.NewStepLimit(maxSteps),
		interval:    interval,
		trackers:    t,
	}
}

// Register registers a tracker.Tracker with the Experiment so that
// data generated during the experiment can be tracked and saved
func (o *Episodic) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Checkpoint registers a checkpointer.Checkpointer which is offered
// every timestep of the experiment
func (o *Episodic) Checkpoint(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// OnReport registers a Reporter which receives a Report every
// reporting interval
func (o *Episodic) OnReport(r Reporter) {
	o.reporters = append(o.reporters, r)
}

// RunEpisode runs a single episode of the experiment and returns its
// statistics
func (o *Episodic) RunEpisode() EpisodeStats {
	if o.start.IsZero() {
		o.start = time.Now()
	}
	traps, _ := o.Environment.(trapper)

	step := o.Environment.Reset()
	o.Agent.ObserveFirst(step)
	o.track(step)

	stats := EpisodeStats{Episode: len(o.history) + 1}
	for !step.Last() {
		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _ = o.Environment.Step(action)
		o.limit.End(&step)

		// Observe the timestep and step the agent
		o.Agent.Observe(action, step)
		o.Agent.Step()

		// Cache the environment step in each Tracker
		o.track(step)
		o.checkpoint(step)

		stats.Reward += step.Reward
		stats.Steps++
		if traps != nil && traps.IsTrap(step.Observation) {
			stats.TrapVisited = true
		}
	}
	stats.Success = step.EndType() == ts.TerminalStateReached

	o.history = append(o.history, stats)
	if len(o.history)%o.interval == 0 {
		report := NewReport(o.history, o.interval, o.episodes,
			time.Since(o.start))
		o.reports = append(o.reports, report)
		for _, r := range o.reporters {
			r(report)
		}
	}
	return stats
}

// Run runs all remaining episodes of the experiment and returns the
// statistics of the whole run
func (o *Episodic) Run() Statistics {
	o.start = time.Now()
	for len(o.history) < o.episodes {
		o.RunEpisode()
	}
	return o.Statistics()
}

// Statistics returns the statistics of the episodes run so far
func (o *Episodic) Statistics() Statistics {
	var elapsed time.Duration
	if !o.start.IsZero() {
		elapsed = time.Since(o.start)
	}

	history := make([]EpisodeStats, len(o.history))
	copy(history, o.history)
	reports := make([]Report, len(o.reports))
	copy(reports, o.reports)

	return Statistics{
		History: history,
		Reports: reports,
		Final:   NewReport(o.history, len(o.history), o.episodes, elapsed),
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Episodic) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Episodic) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}

// checkpoint offers the timestep to each checkpointer
func (o *Episodic) checkpoint(t ts.TimeStep) {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			log.Printf("warning: checkpoint at step %d: %v", t.Number, err)
		}
	}
}
