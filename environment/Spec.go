package environment

import "fmt"

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion, an observation, or a discount
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// size, and bounds of an action, observation, or discount in an
// environment.
//
// For discrete specifications, Size is the number of distinct values,
// which range over [LowerBound, UpperBound].
type Spec struct {
	Size       int
	Type       SpecType
	LowerBound float64
	UpperBound float64
	Cardinality
}

// NewSpec constructs a new environment specification
func NewSpec(size int, t SpecType, lowerBound, upperBound float64,
	cardinality Cardinality) Spec {
	if size < 1 {
		panic(fmt.Sprintf("spec size must be positive, got %d", size))
	}
	if lowerBound > upperBound {
		panic(fmt.Sprintf("lower bound %v exceeds upper bound %v",
			lowerBound, upperBound))
	}
	return Spec{size, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteSpec constructs a specification of n discrete values
// 0, 1, ..., n-1
func NewDiscreteSpec(n int, t SpecType) Spec {
	return NewSpec(n, t, 0, float64(n-1), Discrete)
}
