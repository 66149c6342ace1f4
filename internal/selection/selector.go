package selection

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrNilRand          = errors.New("random source is required")
	ErrEmptyPopulation  = errors.New("population is empty")
	ErrRaggedVectors    = errors.New("error vectors differ in length")
	ErrEmptyCandidates  = errors.New("candidate set emptied during elimination")
	ErrNilSelector      = errors.New("selector is required")
	ErrSelectorNotFound = errors.New("selector not found")
)

// Population exposes read-only access to a generation's candidates. Index i
// identifies an individual; its error vector holds one non-negative score per
// test case, lower is better. All vectors must share the same length.
type Population interface {
	Len() int
	ErrorVector(i int) []float64
}

// Selector picks one individual from a population and returns its index.
// Selectors never mutate the population and draw randomness only from the
// supplied rng.
type Selector interface {
	Name() string
	Select(rng *rand.Rand, pop Population) (int, error)
}

// ValidatePopulation checks the population invariants shared by every
// selector and returns the number of test cases.
func ValidatePopulation(pop Population) (int, error) {
	if pop == nil || pop.Len() == 0 {
		return 0, ErrEmptyPopulation
	}
	numCases := len(pop.ErrorVector(0))
	for i := 1; i < pop.Len(); i++ {
		if n := len(pop.ErrorVector(i)); n != numCases {
			return 0, fmt.Errorf("%w: individual %d has %d cases, want %d", ErrRaggedVectors, i, n, numCases)
		}
	}
	return numCases, nil
}

func totalError(pop Population, i int) float64 {
	total := 0.0
	for _, score := range pop.ErrorVector(i) {
		total += score
	}
	return total
}
