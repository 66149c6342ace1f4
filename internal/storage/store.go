package storage

import (
	"context"

	"lexicase/internal/model"
)

// Store persists populations and selection-run artifacts.
type Store interface {
	Init(ctx context.Context) error
	SavePopulation(ctx context.Context, population model.Population) error
	GetPopulation(ctx context.Context, id string) (model.Population, bool, error)
	SaveRunSummary(ctx context.Context, summary model.RunSummary) error
	GetRunSummary(ctx context.Context, runID string) (model.RunSummary, bool, error)
	ListRunSummaries(ctx context.Context) ([]model.RunSummary, error)
	SaveWinDistribution(ctx context.Context, runID string, counts []model.WinCount) error
	GetWinDistribution(ctx context.Context, runID string) ([]model.WinCount, bool, error)
}
