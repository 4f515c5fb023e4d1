package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepTypes(t *testing.T) {
	t.Parallel()

	step := New(First, 0, 0.99, 0, 0)
	assert.True(t, step.First())
	assert.False(t, step.Last())
	assert.Equal(t, NotEnded, step.EndType())

	step = New(Last, 10, 0.99, 15, 6)
	step.SetEnd(TerminalStateReached)
	assert.True(t, step.Last())
	assert.Equal(t, TerminalStateReached, step.EndType())
}

func TestNewTransition(t *testing.T) {
	t.Parallel()

	step := New(Mid, -1, 0.9, 4, 1)
	next := New(Mid, -10, 0.9, 5, 2)
	assert.Equal(t, Transition{State: 4, Action: 3, Reward: -10,
		Discount: 0.9, NextState: 5}, NewTransition(step, 3, next))
}
