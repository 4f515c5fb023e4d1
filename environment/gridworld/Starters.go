package gridworld

import (
	"github.com/samuelfneumann/treasurehunt/environment"
)

// SingleStart starts every episode in the same state
type SingleStart struct {
	state int
}

// NewSingleStart returns a Starter which always starts episodes at
// (row, col) in a gridworld with size rows and size columns
func NewSingleStart(row, col, size int) (environment.Starter, error) {
	const op = "newSingleStart"
	if row < 0 || row >= size {
		return nil, environment.NewConfigurationError(op, "row",
			"row = %d outside of [0, %d)", row, size)
	} else if col < 0 || col >= size {
		return nil, environment.NewConfigurationError(op, "col",
			"col = %d outside of [0, %d)", col, size)
	}

	return &SingleStart{row*size + col}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() int {
	return s.state
}
