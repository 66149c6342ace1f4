//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"lexicase/internal/model"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "lexicase.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	population := model.Population{
		VersionedRecord: Stamp(),
		ID:              "pop-1",
		Individuals: []model.Individual{
			{ID: "ind-0", Errors: []float64{0, 5}},
			{ID: "ind-1", Errors: []float64{5, 0}},
		},
	}
	if err := store.SavePopulation(ctx, population); err != nil {
		t.Fatalf("save population: %v", err)
	}

	gotPop, ok, err := store.GetPopulation(ctx, "pop-1")
	if err != nil {
		t.Fatalf("get population: %v", err)
	}
	if !ok || gotPop.Len() != 2 {
		t.Fatalf("unexpected population: ok=%v %+v", ok, gotPop)
	}

	summary := model.RunSummary{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		PopulationID:    "pop-1",
		Selector:        "lexicase",
		Trials:          100,
		CreatedAtUTC:    "2026-08-25T10:00:00Z",
	}
	if err := store.SaveRunSummary(ctx, summary); err != nil {
		t.Fatalf("save run summary: %v", err)
	}

	gotSummary, ok, err := store.GetRunSummary(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run summary: %v", err)
	}
	if !ok || gotSummary.Selector != "lexicase" {
		t.Fatalf("unexpected summary: ok=%v %+v", ok, gotSummary)
	}

	counts := []model.WinCount{
		{Index: 0, IndividualID: "ind-0", Wins: 55, Frequency: 0.55},
		{Index: 1, IndividualID: "ind-1", Wins: 45, Frequency: 0.45},
	}
	if err := store.SaveWinDistribution(ctx, "run-1", counts); err != nil {
		t.Fatalf("save win distribution: %v", err)
	}

	gotCounts, ok, err := store.GetWinDistribution(ctx, "run-1")
	if err != nil {
		t.Fatalf("get win distribution: %v", err)
	}
	if !ok || len(gotCounts) != 2 || gotCounts[0].Wins != 55 {
		t.Fatalf("unexpected win distribution: ok=%v %+v", ok, gotCounts)
	}
}

func TestSQLiteStoreListRunSummaries(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "lexicase.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	for _, summary := range []model.RunSummary{
		{VersionedRecord: Stamp(), RunID: "run-a", CreatedAtUTC: "2026-08-24T10:00:00Z"},
		{VersionedRecord: Stamp(), RunID: "run-b", CreatedAtUTC: "2026-08-25T10:00:00Z"},
	} {
		if err := store.SaveRunSummary(ctx, summary); err != nil {
			t.Fatalf("save run summary: %v", err)
		}
	}

	summaries, err := store.ListRunSummaries(ctx)
	if err != nil {
		t.Fatalf("list run summaries: %v", err)
	}
	if len(summaries) != 2 || summaries[0].RunID != "run-b" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "lexicase.db"))
	if _, _, err := store.GetPopulation(context.Background(), "pop-1"); err == nil {
		t.Fatal("expected error before init")
	}
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
