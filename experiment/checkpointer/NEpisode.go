package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/treasurehunt/timestep"
)

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	episodes int
	object   Serializable // Object to save

	// filename names the file for each checkpoint. Numbered gives
	// every checkpoint its own file.
	filename func() string
}

// NewNEpisode returns a checkpointer that checkpoints every n episodes.
func NewNEpisode(n int, object Serializable,
	filename func() string) Checkpointer {
	if n < 1 {
		panic(fmt.Sprintf("newNEpisode: interval must be positive, got %d", n))
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the Checkpointer's tracked object if t ends the
// n-th episode since the last checkpoint
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}
	n.episodes++
	if n.episodes%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
