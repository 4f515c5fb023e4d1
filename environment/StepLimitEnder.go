package environment

import "github.com/samuelfneumann/treasurehunt/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// Limit returns the number of steps after which episodes are ended
func (s StepLimit) Limit() int {
	return s.episodeSteps
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode temrination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is timestep.Timeout.
//
// Episodes which have already ended are left untouched, so that
// reaching a terminal state on the final allowed step is not reported
// as a timeout.
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Last() {
		return true
	}
	if t.Number >= s.episodeSteps {
		t.StepType = timestep.Last
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
