// Package checkpointer implements Checkpointers, which periodically
// save an object during an experiment
package checkpointer

import (
	"encoding/gob"

	ts "github.com/samuelfneumann/treasurehunt/timestep"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	Save(filename string) error
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
