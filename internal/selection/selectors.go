package selection

import (
	"fmt"
	"math/rand"
)

// Best returns the individual with the lowest total error. Ties go to the
// lowest index so repeated calls agree.
type Best struct{}

func (Best) Name() string {
	return "best"
}

func (Best) Select(_ *rand.Rand, pop Population) (int, error) {
	if _, err := ValidatePopulation(pop); err != nil {
		return 0, err
	}
	best := 0
	bestTotal := totalError(pop, 0)
	for i := 1; i < pop.Len(); i++ {
		if total := totalError(pop, i); total < bestTotal {
			best = i
			bestTotal = total
		}
	}
	return best, nil
}

// Worst returns the individual with the highest total error.
type Worst struct{}

func (Worst) Name() string {
	return "worst"
}

func (Worst) Select(_ *rand.Rand, pop Population) (int, error) {
	if _, err := ValidatePopulation(pop); err != nil {
		return 0, err
	}
	worst := 0
	worstTotal := totalError(pop, 0)
	for i := 1; i < pop.Len(); i++ {
		if total := totalError(pop, i); total > worstTotal {
			worst = i
			worstTotal = total
		}
	}
	return worst, nil
}

// Random picks uniformly, ignoring error vectors entirely.
type Random struct{}

func (Random) Name() string {
	return "random"
}

func (Random) Select(rng *rand.Rand, pop Population) (int, error) {
	if rng == nil {
		return 0, ErrNilRand
	}
	if _, err := ValidatePopulation(pop); err != nil {
		return 0, err
	}
	return rng.Intn(pop.Len()), nil
}

// Tournament samples Size distinct individuals and returns the one with the
// lowest total error among them.
type Tournament struct {
	Size int
}

func (Tournament) Name() string {
	return "tournament"
}

func (t Tournament) Select(rng *rand.Rand, pop Population) (int, error) {
	if rng == nil {
		return 0, ErrNilRand
	}
	if _, err := ValidatePopulation(pop); err != nil {
		return 0, err
	}

	size := t.Size
	if size <= 0 {
		size = 2
	}
	if size > pop.Len() {
		size = pop.Len()
	}

	entrants := rng.Perm(pop.Len())[:size]
	best := entrants[0]
	bestTotal := totalError(pop, best)
	for _, i := range entrants[1:] {
		if total := totalError(pop, i); total < bestTotal {
			best = i
			bestTotal = total
		}
	}
	return best, nil
}

// WeightedChoice pairs a selector with its selection weight.
type WeightedChoice struct {
	Selector Selector
	Weight   uint
}

// Weighted delegates each call to one of its child selectors, chosen with
// probability proportional to its weight.
type Weighted struct {
	Choices []WeightedChoice
}

func (Weighted) Name() string {
	return "weighted"
}

func (w Weighted) Select(rng *rand.Rand, pop Population) (int, error) {
	if rng == nil {
		return 0, ErrNilRand
	}
	total := uint(0)
	for _, choice := range w.Choices {
		if choice.Selector == nil {
			return 0, ErrNilSelector
		}
		total += choice.Weight
	}
	if total == 0 {
		return 0, fmt.Errorf("weighted selector requires a positive total weight")
	}

	pick := rng.Intn(int(total))
	for _, choice := range w.Choices {
		if pick < int(choice.Weight) {
			return choice.Selector.Select(rng, pop)
		}
		pick -= int(choice.Weight)
	}
	return 0, fmt.Errorf("weighted selector fell through its choices")
}
