package gridworld

import (
	"math/rand/v2"

	"github.com/samuelfneumann/treasurehunt/environment"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxTraps returns the maximum number of traps that fit in a gridworld
// with size rows and size columns: every cell but the start and the
// treasure.
func MaxTraps(size int) int {
	if size < 2 {
		return 0
	}
	return size*size - 2
}

// GenerateTraps places count traps with the given penalty on distinct
// cells of a gridworld with size rows and size columns, sampling
// uniformly without replacement from every cell except the start state
// 0 and the treasure in the last state. Traps are returned in the order
// they were drawn.
//
// If count exceeds the number of available cells, no traps are placed
// and a *environment.CapacityError is returned.
func GenerateTraps(size, count int, penalty float64,
	src rand.Source) ([]Trap, error) {
	const op = "generateTraps"

	if err := environment.CheckAtLeast(op, "grid size", size, 2); err != nil {
		return nil, err
	}
	if err := environment.CheckAtLeast(op, "trap count", count, 0); err != nil {
		return nil, err
	}
	if err := environment.CheckFinite(op, "trap penalty", penalty); err != nil {
		return nil, err
	}

	available := MaxTraps(size)
	if count > available {
		return nil, &environment.CapacityError{
			Op:        op,
			Requested: count,
			Available: available,
		}
	}
	if count == 0 {
		return nil, nil
	}

	// Uniform weights over all cells but the start and the treasure
	states := size * size
	weights := make([]float64, states)
	for i := 1; i < states-1; i++ {
		weights[i] = 1.0
	}
	dist := distuv.NewCategorical(weights, src)

	traps := make([]Trap, 0, count)
	for len(traps) < count {
		position := int(dist.Rand())
		dist.Reweight(position, 0)
		traps = append(traps, Trap{Position: position, Penalty: penalty})
	}
	return traps, nil
}
