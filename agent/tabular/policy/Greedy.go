package policy

import (
	"gonum.org/v1/gonum/floats"
)

// Greedy returns the action with the largest value in qRow. Ties are
// broken in favour of the lowest action.
func Greedy(qRow []float64) int {
	return floats.MaxIdx(qRow)
}
