package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"lexicase/internal/storage"
	lexiapi "lexicase/pkg/lexicase"
)

const exportsDir = "exports"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "select":
		return runSelect(ctx, args[1:])
	case "trials":
		return runTrials(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lexicase.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := lexiapi.New(lexiapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runSelect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	populationPath := fs.String("population", "", "population JSON file")
	selector := fs.String("selector", "lexicase", "selector name")
	epsilon := fs.Float64("epsilon", 0, "epsilon band for epsilon_lexicase")
	tournamentSize := fs.Int("tournament-size", 0, "tournament size for the tournament selector")
	seed := fs.Int64("seed", 0, "random seed (0 means time-based)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *populationPath == "" {
		return errors.New("select requires --population")
	}

	population, err := loadPopulationFile(*populationPath)
	if err != nil {
		return err
	}

	client, err := lexiapi.New(lexiapi.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	winner, err := client.SelectOne(ctx, lexiapi.TrialsRequest{
		Population:     population,
		Selector:       *selector,
		Epsilon:        *epsilon,
		TournamentSize: *tournamentSize,
		Seed:           *seed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("selected id=%s errors=%v\n", winner.ID, winner.Errors)
	return nil
}

func runTrials(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trials", flag.ContinueOnError)
	configPath := fs.String("config", "", "trials config JSON file")
	populationPath := fs.String("population", "", "population JSON file")
	randomSize := fs.Int("random-size", 0, "generate a random population of this size instead of loading one")
	randomCases := fs.Int("random-cases", 16, "test cases per generated individual")
	selector := fs.String("selector", "lexicase", "selector name")
	epsilon := fs.Float64("epsilon", 0, "epsilon band for epsilon_lexicase")
	tournamentSize := fs.Int("tournament-size", 0, "tournament size for the tournament selector")
	trials := fs.Int("trials", 1000, "number of independent selections")
	seed := fs.Int64("seed", 0, "random seed (0 means time-based)")
	workers := fs.Int("workers", 1, "parallel selection workers")
	runID := fs.String("run-id", "", "run id (empty means generated)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lexicase.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := lexiapi.TrialsRequest{
		RunID:          *runID,
		Selector:       *selector,
		Epsilon:        *epsilon,
		TournamentSize: *tournamentSize,
		Trials:         *trials,
		Seed:           *seed,
		Workers:        *workers,
	}
	if *configPath != "" {
		cfg, err := loadTrialsConfig(*configPath)
		if err != nil {
			return err
		}
		applyTrialsConfig(&req, populationPath, randomSize, randomCases, cfg)
	}

	switch {
	case *populationPath != "":
		population, err := loadPopulationFile(*populationPath)
		if err != nil {
			return err
		}
		req.Population = population
	case *randomSize > 0:
		req.Population = makeRandomPopulation(*randomSize, *randomCases, req.Seed)
	default:
		return errors.New("trials requires --population, --random-size or a config providing one")
	}

	client, err := lexiapi.New(lexiapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	result, err := client.RunTrials(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run_id=%s selector=%s trials=%d workers=%d elapsed_ms=%d\n",
		result.Summary.RunID, result.Summary.Selector, result.Summary.Trials,
		result.Summary.Workers, result.Summary.ElapsedMillis)
	fmt.Printf("chi_square=%.4f p_value=%.4f\n", result.Summary.ChiSquare, result.Summary.PValue)
	for _, count := range result.Distribution {
		if count.Wins == 0 {
			continue
		}
		fmt.Printf("  %s wins=%d freq=%.4f\n", count.IndividualID, count.Wins, count.Frequency)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 10, "maximum runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lexicase.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := lexiapi.New(lexiapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summaries, err := client.RunSummaries(ctx, *limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, summary := range summaries {
		fmt.Printf("%s created=%s selector=%s trials=%d p_value=%.4f\n",
			summary.RunID, summary.CreatedAtUTC, summary.Selector, summary.Trials, summary.PValue)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run")
	outDir := fs.String("out", exportsDir, "export output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "lexicase.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("export requires --run-id or --latest")
	}

	client, err := lexiapi.New(lexiapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	if *latest {
		summaries, err := client.RunSummaries(ctx, 1)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			return errors.New("no runs available to export")
		}
		*runID = summaries[0].RunID
	}

	summary, ok, err := client.RunSummary(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", *runID)
	}
	distribution, _, err := client.WinDistribution(ctx, *runID)
	if err != nil {
		return err
	}

	exportedDir := filepath.Join(*outDir, *runID)
	if err := os.MkdirAll(exportedDir, 0o755); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(exportedDir, "summary.json"), summary); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(exportedDir, "win_distribution.json"), distribution); err != nil {
		return err
	}

	fmt.Printf("exported run_id=%s to=%s\n", *runID, filepath.Clean(exportedDir))
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyTrialsConfig(req *lexiapi.TrialsRequest, populationPath *string, randomSize, randomCases *int, cfg trialsConfig) {
	if cfg.RunID != "" {
		req.RunID = cfg.RunID
	}
	if cfg.Selector != "" {
		req.Selector = cfg.Selector
	}
	if cfg.Epsilon != 0 {
		req.Epsilon = cfg.Epsilon
	}
	if cfg.TournamentSize != 0 {
		req.TournamentSize = cfg.TournamentSize
	}
	if cfg.Trials != 0 {
		req.Trials = cfg.Trials
	}
	if cfg.Seed != 0 {
		req.Seed = cfg.Seed
	}
	if cfg.Workers != 0 {
		req.Workers = cfg.Workers
	}
	if cfg.PopulationPath != "" && *populationPath == "" {
		*populationPath = cfg.PopulationPath
	}
	if cfg.RandomSize != 0 && *randomSize == 0 {
		*randomSize = cfg.RandomSize
	}
	if cfg.RandomCases != 0 {
		*randomCases = cfg.RandomCases
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: lexicasectl <init|select|trials|runs|export> [flags]", msg)
}
