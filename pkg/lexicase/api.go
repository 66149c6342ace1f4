// Package lexicase exposes lexicase parent selection over populations scored
// against a vector of test cases, plus persistence of selection-trial runs.
package lexicase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"lexicase/internal/model"
	"lexicase/internal/selection"
	"lexicase/internal/stats"
	"lexicase/internal/storage"
)

const defaultDBPath = "lexicase.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

// TrialsRequest describes a batch of independent selection events against one
// population snapshot.
type TrialsRequest struct {
	RunID          string
	Population     model.Population
	Selector       string
	Epsilon        float64
	TournamentSize int
	Trials         int
	Seed           int64
	Workers        int
}

type TrialsResult struct {
	Summary      model.RunSummary
	Distribution []model.WinCount
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// SelectOne runs a single selection event and returns the winning individual.
// The returned individual is the population's own entry, not a copy.
func (c *Client) SelectOne(ctx context.Context, req TrialsRequest) (model.Individual, error) {
	if err := ctx.Err(); err != nil {
		return model.Individual{}, err
	}

	sel, err := selection.NewSelector(req.Selector, selection.Config{
		Epsilon:        req.Epsilon,
		TournamentSize: req.TournamentSize,
	})
	if err != nil {
		return model.Individual{}, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	winner, err := sel.Select(rng, req.Population)
	if err != nil {
		return model.Individual{}, err
	}
	return req.Population.Individuals[winner], nil
}

// RunTrials performs the requested number of independent selections, reports
// the win distribution with a chi-squared uniformity check, and persists the
// population, summary and distribution under the run ID.
func (c *Client) RunTrials(ctx context.Context, req TrialsRequest) (TrialsResult, error) {
	sel, err := selection.NewSelector(req.Selector, selection.Config{
		Epsilon:        req.Epsilon,
		TournamentSize: req.TournamentSize,
	})
	if err != nil {
		return TrialsResult{}, err
	}

	if req.Trials <= 0 {
		req.Trials = 1000
	}
	if req.Workers <= 0 {
		req.Workers = 1
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	if req.RunID == "" {
		req.RunID = fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	if req.Population.ID == "" {
		req.Population.ID = req.RunID + "-population"
	}

	started := time.Now()
	winners, err := selection.SelectNParallel(ctx, req.Population, sel, req.Trials, req.Workers, req.Seed)
	if err != nil {
		return TrialsResult{}, err
	}
	elapsed := time.Since(started)

	dist, err := stats.NewDistribution(req.Population.Len())
	if err != nil {
		return TrialsResult{}, err
	}
	if err := dist.RecordAll(winners); err != nil {
		return TrialsResult{}, err
	}
	chiSquare, pValue, err := dist.ChiSquareUniform()
	if err != nil {
		return TrialsResult{}, err
	}

	counts := dist.Counts()
	frequencies := dist.Frequencies()
	distribution := make([]model.WinCount, len(counts))
	for i := range counts {
		distribution[i] = model.WinCount{
			Index:        i,
			IndividualID: req.Population.Individuals[i].ID,
			Wins:         counts[i],
			Frequency:    frequencies[i],
		}
	}

	summary := model.RunSummary{
		VersionedRecord: storage.Stamp(),
		RunID:           req.RunID,
		PopulationID:    req.Population.ID,
		Selector:        sel.Name(),
		Epsilon:         req.Epsilon,
		TournamentSize:  req.TournamentSize,
		Trials:          req.Trials,
		Seed:            req.Seed,
		Workers:         req.Workers,
		ElapsedMillis:   elapsed.Milliseconds(),
		ChiSquare:       chiSquare,
		PValue:          pValue,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
	}

	population := req.Population
	population.VersionedRecord = storage.Stamp()
	if err := c.store.SavePopulation(ctx, population); err != nil {
		return TrialsResult{}, err
	}
	if err := c.store.SaveRunSummary(ctx, summary); err != nil {
		return TrialsResult{}, err
	}
	if err := c.store.SaveWinDistribution(ctx, req.RunID, distribution); err != nil {
		return TrialsResult{}, err
	}

	return TrialsResult{Summary: summary, Distribution: distribution}, nil
}

func (c *Client) RunSummaries(ctx context.Context, limit int) ([]model.RunSummary, error) {
	summaries, err := c.store.ListRunSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func (c *Client) RunSummary(ctx context.Context, runID string) (model.RunSummary, bool, error) {
	return c.store.GetRunSummary(ctx, runID)
}

func (c *Client) WinDistribution(ctx context.Context, runID string) ([]model.WinCount, bool, error) {
	return c.store.GetWinDistribution(ctx, runID)
}

func (c *Client) Population(ctx context.Context, id string) (model.Population, bool, error) {
	return c.store.GetPopulation(ctx, id)
}
