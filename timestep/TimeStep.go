// Package timestep implements timesteps of the agent-environment interaction
package timestep

import "fmt"

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only TimeSteps with StepType
// Last carry an EndType other than NotEnded.
type EndType int

const (
	NotEnded EndType = iota

	// TerminalStateReached denotes that the agent entered a terminal
	// state of the environment
	TerminalStateReached

	// Timeout denotes that the episode was cut off by a step limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "NotEnded"
	}
}

// TimeStep packages together a single timestep in an environment. The
// Observation is the index of the discrete state the agent occupies
// after the step.
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation int
	Number      int
	end         EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o int, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.end = e
}

// EndType returns the reason the episode ended, or NotEnded if the
// TimeStep is not the last in its episode
func (t *TimeStep) EndType() EndType {
	return t.end
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"State: %d  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount,
		t.Observation, t.Number)
}

// Transition packages together a single (s, a, r, s') transition
type Transition struct {
	State     int
	Action    int
	Reward    float64
	Discount  float64
	NextState int
}

// NewTransition creates and returns a new transition from two
// consecutive TimeSteps and the action taken between them
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		State:     step.Observation,
		Action:    action,
		Reward:    next.Reward,
		Discount:  next.Discount,
		NextState: next.Observation,
	}
}
