package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"lexicase/internal/model"
)

type trialsConfig struct {
	RunID          string
	Selector       string
	Epsilon        float64
	TournamentSize int
	Trials         int
	Seed           int64
	Workers        int
	PopulationPath string
	RandomSize     int
	RandomCases    int
}

func loadTrialsConfig(path string) (trialsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return trialsConfig{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return trialsConfig{}, err
	}

	var cfg trialsConfig
	if v, ok := asString(raw["run_id"]); ok {
		cfg.RunID = v
	}
	if v, ok := asString(raw["selector"]); ok {
		cfg.Selector = v
	}
	if v, ok := asFloat64(raw["epsilon"]); ok {
		cfg.Epsilon = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		cfg.TournamentSize = v
	}
	if v, ok := asInt(raw["trials"]); ok {
		cfg.Trials = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		cfg.Seed = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		cfg.Workers = v
	}
	if v, ok := asString(raw["population_path"]); ok {
		cfg.PopulationPath = v
	}
	if v, ok := asInt(raw["random_size"]); ok {
		cfg.RandomSize = v
	}
	if v, ok := asInt(raw["random_cases"]); ok {
		cfg.RandomCases = v
	}
	return cfg, nil
}

func loadPopulationFile(path string) (model.Population, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Population{}, err
	}
	var population model.Population
	if err := json.Unmarshal(data, &population); err != nil {
		return model.Population{}, fmt.Errorf("parse population %s: %w", path, err)
	}
	if len(population.Individuals) == 0 {
		return model.Population{}, errors.New("population file has no individuals")
	}
	return population, nil
}

// makeRandomPopulation builds a demo population with integer-valued errors in
// [0,10), mirroring the shape of program-synthesis error vectors.
func makeRandomPopulation(size, cases int, seed int64) model.Population {
	rng := rand.New(rand.NewSource(seed))
	individuals := make([]model.Individual, size)
	for i := range individuals {
		errVec := make([]float64, cases)
		for j := range errVec {
			errVec[j] = float64(rng.Intn(10))
		}
		individuals[i] = model.Individual{
			ID:     fmt.Sprintf("ind-%d", i),
			Errors: errVec,
		}
	}
	return model.Population{
		ID:          fmt.Sprintf("random-%d", seed),
		Individuals: individuals,
	}
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asInt64(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func asFloat64(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
