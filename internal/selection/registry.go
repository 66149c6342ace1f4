package selection

import (
	"fmt"
	"sort"
)

// Config carries the tunables a named selector may need.
type Config struct {
	Epsilon        float64
	TournamentSize int
}

// NewSelector builds a selector from its registry name. An empty name means
// plain lexicase.
func NewSelector(name string, cfg Config) (Selector, error) {
	switch name {
	case "", "lexicase":
		return Lexicase{}, nil
	case "epsilon_lexicase":
		if cfg.Epsilon <= 0 {
			return nil, fmt.Errorf("epsilon_lexicase requires a positive epsilon, got %g", cfg.Epsilon)
		}
		return Lexicase{Epsilon: cfg.Epsilon}, nil
	case "best":
		return Best{}, nil
	case "worst":
		return Worst{}, nil
	case "random":
		return Random{}, nil
	case "tournament":
		return Tournament{Size: cfg.TournamentSize}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrSelectorNotFound, name)
	}
}

// Names lists the registry names accepted by NewSelector.
func Names() []string {
	names := []string{"lexicase", "epsilon_lexicase", "best", "worst", "random", "tournament"}
	sort.Strings(names)
	return names
}
