package tracker

import (
	"fmt"

	ts "github.com/samuelfneumann/treasurehunt/timestep"
)

// Return tracks and saves the episodic return in an experiment. When
// an environment returns a TimeStep, this Tracker will extract the
// reward and accumulate the return for each episode in the experiment.
// Rewards are summed without discounting.
//
// Note: An episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// return will not be saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{lastTimeStep: -1, filename: filename}
}

// Track tracks the rewards seen on a timestep. By calling this method
// on every timestep, the Tracker will store all rewards seen in the
// episode, and save the cumulative reward for that episode as the
// episodic return. When a new episode starts, this method will
// automatically detect this and start accumulating the rewards for this
// new episode separately from the rewards seen on previous episodes.
//
// Track panics if it is called for non-sequential timesteps
func (r *Return) Track(step ts.TimeStep) {
	// Ensure that Track is called on sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		panic(fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number))
	}

	// The first timestep of an episode carries no reward
	if !step.First() {
		r.currentReturn += step.Reward
	}

	if !step.Last() {
		r.lastTimeStep = step.Number
		return
	}

	// Episode has ended, save the return and begin tracking the
	// return for a new episode
	r.episodeReturns = append(r.episodeReturns, r.currentReturn)
	r.currentReturn = 0.0
	r.lastTimeStep = -1
}

// Data returns the episodic returns tracked so far
func (r *Return) Data() []float64 {
	data := make([]float64, len(r.episodeReturns))
	copy(data, r.episodeReturns)
	return data
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	return save(r.filename, r.episodeReturns)
}
