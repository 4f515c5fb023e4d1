package tracker

import "github.com/samuelfneumann/treasurehunt/timestep"

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment.
// Note that an episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// length will not be saved.
type EpisodeLength struct {
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode. Otherwise, it waits to receive the
// last timestep in an episode.
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, float64(t.Number))
	}
}

// Data returns the episode lengths tracked so far
func (e *EpisodeLength) Data() []float64 {
	data := make([]float64, len(e.episodeLengths))
	copy(data, e.episodeLengths)
	return data
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	return save(e.filename, e.episodeLengths)
}
