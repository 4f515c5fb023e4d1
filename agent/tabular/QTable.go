// Package tabular implements tables of action values for agents acting
// in discrete environments
package tabular

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/treasurehunt/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// QTable stores one action value per (state, action) pair. Rows index
// states and columns index actions. A new QTable holds only zeroes.
//
// A QTable is not safe for concurrent use. Code which only reads the
// values, such as a display, should work on a Snapshot.
type QTable struct {
	values *mat.Dense
}

// NewQTable returns a zero-initialized QTable with the given number of
// states and actions
func NewQTable(states, actions int) *QTable {
	if states < 1 || actions < 1 {
		panic(fmt.Sprintf("newQTable: table must have at least one state "+
			"and action, got (%d, %d)", states, actions))
	}
	return &QTable{mat.NewDense(states, actions, nil)}
}

// Dims returns the number of states and actions in the table
func (q *QTable) Dims() (states, actions int) {
	return q.values.Dims()
}

// At returns the value of taking action in state
func (q *QTable) At(state, action int) float64 {
	return q.values.At(state, action)
}

// Set sets the value of taking action in state
func (q *QTable) Set(state, action int, value float64) {
	q.values.Set(state, action, value)
}

// Row returns the action values of state. The returned slice shares
// storage with the table and must not be modified.
func (q *QTable) Row(state int) []float64 {
	return q.values.RawRowView(state)
}

// Max returns the largest action value of state
func (q *QTable) Max(state int) float64 {
	return floats.Max(q.Row(state))
}

// ArgMax returns the action with the largest value in state. If
// multiple actions share the largest value, the lowest action is
// returned.
func (q *QTable) ArgMax(state int) int {
	return floats.MaxIdx(q.Row(state))
}

// StateValues returns the largest action value of each state
func (q *QTable) StateValues() []float64 {
	states, _ := q.Dims()
	values := make([]float64, states)
	for s := range values {
		values[s] = q.Max(s)
	}
	return values
}

// Matrix returns a copy of the table as a matrix
func (q *QTable) Matrix() mat.Matrix {
	return mat.DenseCopyOf(q.values)
}

// Snapshot returns an independent copy of the table
func (q *QTable) Snapshot() *QTable {
	return &QTable{mat.DenseCopyOf(q.values)}
}

// Reset sets every value in the table to zero
func (q *QTable) Reset() {
	q.values.Zero()
}

// Equal returns whether two tables hold exactly the same values
func (q *QTable) Equal(other *QTable) bool {
	return mat.Equal(q.values, other.values)
}

// MustMatch panics if the table does not have exactly the given number
// of states and actions. A table is never resized to fit an environment.
func (q *QTable) MustMatch(states, actions int) {
	r, c := q.Dims()
	if r != states || c != actions {
		panic(fmt.Sprintf("mustMatch: table has shape (%d, %d) but "+
			"environment has shape (%d, %d)", r, c, states, actions))
	}
}

// String returns the table formatted as a matrix
func (q *QTable) String() string {
	return matutils.Format(q.values)
}

// GobEncode implements the gob.GobEncoder interface
func (q *QTable) GobEncode() ([]byte, error) {
	return q.values.MarshalBinary()
}

// GobDecode implements the gob.GobDecoder interface
func (q *QTable) GobDecode(data []byte) error {
	var values mat.Dense
	if err := values.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}
	q.values = &values
	return nil
}

// Save gob-encodes the table to filename
func (q *QTable) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %w", err)
	}
	if err := gob.NewEncoder(file).Encode(q); err != nil {
		file.Close()
		return fmt.Errorf("save: could not encode table: %w", err)
	}
	return file.Close()
}

// Load decodes a table previously written by Save
func Load(filename string) (*QTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %w", err)
	}
	defer file.Close()

	q := &QTable{}
	if err := gob.NewDecoder(file).Decode(q); err != nil {
		return nil, fmt.Errorf("load: could not decode table: %w", err)
	}
	return q, nil
}
