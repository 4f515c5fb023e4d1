package tracker

import (
	"path/filepath"
	"testing"

	ts "github.com/samuelfneumann/treasurehunt/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the timesteps of an episode with the given rewards
func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 1, 0, 0)}
	for i, r := range rewards {
		t := ts.Mid
		if i == len(rewards)-1 {
			t = ts.Last
		}
		steps = append(steps, ts.New(t, r, 1, i+1, i+1))
	}
	return steps
}

func TestReturnAndLength(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	returns := NewReturn(filepath.Join(dir, "returns.bin"))
	lengths := NewEpisodeLength(filepath.Join(dir, "lengths.bin"))

	for _, ep := range [][]ts.TimeStep{
		episode(-1, -10, -1),
		episode(-1, 10),
		episode(-1, -1, -1, -1),
	} {
		for _, step := range ep {
			returns.Track(step)
			lengths.Track(step)
		}
	}

	assert.Equal(t, []float64{-12, 9, -4}, returns.Data())
	assert.Equal(t, []float64{3, 2, 4}, lengths.Data())

	require.NoError(t, returns.Save())
	require.NoError(t, lengths.Save())

	data, err := LoadData(filepath.Join(dir, "returns.bin"))
	require.NoError(t, err)
	assert.Equal(t, []float64{-12, 9, -4}, data)
	data, err = LoadData(filepath.Join(dir, "lengths.bin"))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 4}, data)
}

func TestReturnPanicsOnGap(t *testing.T) {
	t.Parallel()
	r := NewReturn("unused")
	r.Track(ts.New(ts.First, 0, 1, 0, 0))
	assert.Panics(t, func() { r.Track(ts.New(ts.Mid, -1, 1, 2, 2)) })
}

func TestSaveToMissingDirectory(t *testing.T) {
	t.Parallel()
	r := NewReturn(filepath.Join(t.TempDir(), "missing", "returns.bin"))
	assert.Error(t, r.Save())

	_, err := LoadData(filepath.Join(t.TempDir(), "none.bin"))
	assert.Error(t, err)
}
