package storage

import (
	"context"
	"sort"
	"sync"

	"lexicase/internal/model"
)

type MemoryStore struct {
	mu            sync.RWMutex
	initialized   bool
	populations   map[string]model.Population
	runs          map[string]model.RunSummary
	distributions map[string][]model.WinCount
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.populations = make(map[string]model.Population)
	s.runs = make(map[string]model.RunSummary)
	s.distributions = make(map[string][]model.WinCount)
	return nil
}

func (s *MemoryStore) SavePopulation(_ context.Context, population model.Population) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := population
	copied.Individuals = make([]model.Individual, len(population.Individuals))
	for i, ind := range population.Individuals {
		copied.Individuals[i] = model.Individual{
			ID:     ind.ID,
			Errors: append([]float64(nil), ind.Errors...),
		}
	}
	s.populations[population.ID] = copied
	return nil
}

func (s *MemoryStore) GetPopulation(_ context.Context, id string) (model.Population, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	population, ok := s.populations[id]
	return population, ok, nil
}

func (s *MemoryStore) SaveRunSummary(_ context.Context, summary model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[summary.RunID] = summary
	return nil
}

func (s *MemoryStore) GetRunSummary(_ context.Context, runID string) (model.RunSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.runs[runID]
	return summary, ok, nil
}

func (s *MemoryStore) ListRunSummaries(_ context.Context) ([]model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]model.RunSummary, 0, len(s.runs))
	for _, summary := range s.runs {
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAtUTC != summaries[j].CreatedAtUTC {
			return summaries[i].CreatedAtUTC > summaries[j].CreatedAtUTC
		}
		return summaries[i].RunID < summaries[j].RunID
	})
	return summaries, nil
}

func (s *MemoryStore) SaveWinDistribution(_ context.Context, runID string, counts []model.WinCount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.WinCount, len(counts))
	copy(copied, counts)
	s.distributions[runID] = copied
	return nil
}

func (s *MemoryStore) GetWinDistribution(_ context.Context, runID string) ([]model.WinCount, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts, ok := s.distributions[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.WinCount, len(counts))
	copy(copied, counts)
	return copied, true, nil
}
