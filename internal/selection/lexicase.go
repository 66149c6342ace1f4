package selection

import (
	"math"
	"math/rand"
)

// TieBreaker resolves a tie left after every test case has been consumed.
type TieBreaker interface {
	Break(rng *rand.Rand, pop Population, tied []int) (int, error)
}

// UniformTieBreak picks uniformly among the tied candidates.
type UniformTieBreak struct{}

func (UniformTieBreak) Break(rng *rand.Rand, _ Population, tied []int) (int, error) {
	if len(tied) == 0 {
		return 0, ErrEmptyCandidates
	}
	return tied[rng.Intn(len(tied))], nil
}

// Lexicase filters the candidate set through the test cases in a fresh random
// order on every call, keeping only the elite on each case, until a single
// candidate survives or the cases run out.
type Lexicase struct {
	// Epsilon widens the elite band on each test case to best+Epsilon.
	// Zero or negative means exact equality on the error value.
	Epsilon float64
	// TieBreak resolves residual ties. Nil means a uniform random pick.
	TieBreak TieBreaker
}

func (l Lexicase) Name() string {
	if l.Epsilon > 0 {
		return "epsilon_lexicase"
	}
	return "lexicase"
}

// Select runs one lexicase elimination pass. With no test cases at all there
// is nothing to filter by, so the winner is a uniform random pick; that is a
// deliberate policy, not a fallback.
func (l Lexicase) Select(rng *rand.Rand, pop Population) (int, error) {
	if rng == nil {
		return 0, ErrNilRand
	}
	numCases, err := ValidatePopulation(pop)
	if err != nil {
		return 0, err
	}

	candidates := make([]int, pop.Len())
	for i := range candidates {
		candidates[i] = i
	}

	winners := make([]int, 0, len(candidates))
	for _, testCase := range rng.Perm(numCases) {
		if len(candidates) == 0 {
			return 0, ErrEmptyCandidates
		}
		if len(candidates) == 1 {
			break
		}

		best := math.Inf(1)
		for _, c := range candidates {
			if score := pop.ErrorVector(c)[testCase]; score < best {
				best = score
			}
		}
		cut := best
		if l.Epsilon > 0 {
			cut = best + l.Epsilon
		}

		winners = winners[:0]
		for _, c := range candidates {
			if pop.ErrorVector(c)[testCase] <= cut {
				winners = append(winners, c)
			}
		}
		candidates, winners = winners, candidates
	}

	switch len(candidates) {
	case 0:
		return 0, ErrEmptyCandidates
	case 1:
		return candidates[0], nil
	}

	tieBreak := l.TieBreak
	if tieBreak == nil {
		tieBreak = UniformTieBreak{}
	}
	return tieBreak.Break(rng, pop, candidates)
}
