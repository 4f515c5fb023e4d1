package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQTableIsZero(t *testing.T) {
	t.Parallel()
	q := NewQTable(16, 4)

	states, actions := q.Dims()
	assert.Equal(t, 16, states)
	assert.Equal(t, 4, actions)
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			assert.Zero(t, q.At(s, a))
		}
	}
	assert.Panics(t, func() { NewQTable(0, 4) })
}

func TestArgMaxTieBreak(t *testing.T) {
	t.Parallel()
	q := NewQTable(2, 4)

	// All zero: lowest action wins
	assert.Equal(t, 0, q.ArgMax(0))

	q.Set(1, 1, 3)
	q.Set(1, 3, 3)
	assert.Equal(t, 1, q.ArgMax(1))
	assert.Equal(t, 3.0, q.Max(1))
	assert.Equal(t, []float64{0, 3}, q.StateValues())
}

func TestSnapshotIsIndependent(t *testing.T) {
	t.Parallel()
	q := NewQTable(4, 4)
	q.Set(2, 1, 5)

	snap := q.Snapshot()
	require.True(t, snap.Equal(q))

	q.Set(2, 1, -1)
	assert.Equal(t, 5.0, snap.At(2, 1))
	assert.False(t, snap.Equal(q))

	m := q.Matrix()
	q.Set(0, 0, 7)
	assert.Zero(t, m.At(0, 0))
}

func TestReset(t *testing.T) {
	t.Parallel()
	q := NewQTable(3, 4)
	q.Set(1, 2, 4)
	q.Reset()
	assert.True(t, q.Equal(NewQTable(3, 4)))
}

func TestMustMatch(t *testing.T) {
	t.Parallel()
	q := NewQTable(16, 4)

	assert.NotPanics(t, func() { q.MustMatch(16, 4) })
	assert.Panics(t, func() { q.MustMatch(25, 4) })
	assert.Panics(t, func() { q.MustMatch(16, 3) })
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()
	q := NewQTable(4, 4)
	q.Set(3, 2, 1.5)
	q.Set(0, 1, -2)

	filename := filepath.Join(t.TempDir(), "q.gob")
	require.NoError(t, q.Save(filename))

	loaded, err := Load(filename)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(q))
}
