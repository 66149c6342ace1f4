package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTrialsConfig(t *testing.T) {
	path := writeTempFile(t, "trials.json", `{
		"run_id": "run-cfg",
		"selector": "epsilon_lexicase",
		"epsilon": 0.5,
		"trials": 2500,
		"seed": 99,
		"workers": 4,
		"random_size": 100,
		"random_cases": 32
	}`)

	cfg, err := loadTrialsConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RunID != "run-cfg" || cfg.Selector != "epsilon_lexicase" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Epsilon != 0.5 || cfg.Trials != 2500 || cfg.Seed != 99 || cfg.Workers != 4 {
		t.Fatalf("unexpected numbers: %+v", cfg)
	}
	if cfg.RandomSize != 100 || cfg.RandomCases != 32 {
		t.Fatalf("unexpected random population settings: %+v", cfg)
	}
}

func TestLoadTrialsConfigIgnoresWrongTypes(t *testing.T) {
	path := writeTempFile(t, "trials.json", `{"trials": "lots", "selector": 7}`)

	cfg, err := loadTrialsConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Trials != 0 || cfg.Selector != "" {
		t.Fatalf("wrong-typed fields should be ignored: %+v", cfg)
	}
}

func TestLoadTrialsConfigBadFile(t *testing.T) {
	if _, err := loadTrialsConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := writeTempFile(t, "bad.json", `{`)
	if _, err := loadTrialsConfig(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadPopulationFile(t *testing.T) {
	path := writeTempFile(t, "pop.json", `{
		"id": "pop-file",
		"individuals": [
			{"id": "a", "errors": [0, 5]},
			{"id": "b", "errors": [5, 0]}
		]
	}`)

	population, err := loadPopulationFile(path)
	if err != nil {
		t.Fatalf("load population: %v", err)
	}
	if population.ID != "pop-file" || population.Len() != 2 {
		t.Fatalf("unexpected population: %+v", population)
	}
	if population.ErrorVector(1)[0] != 5 {
		t.Fatalf("unexpected error vector: %v", population.ErrorVector(1))
	}
}

func TestLoadPopulationFileRejectsEmpty(t *testing.T) {
	path := writeTempFile(t, "empty.json", `{"id": "empty", "individuals": []}`)
	if _, err := loadPopulationFile(path); err == nil {
		t.Fatal("expected error for empty population")
	}
}

func TestMakeRandomPopulationDeterministic(t *testing.T) {
	a := makeRandomPopulation(10, 8, 42)
	b := makeRandomPopulation(10, 8, 42)

	if a.Len() != 10 || len(a.ErrorVector(0)) != 8 {
		t.Fatalf("unexpected shape: %d individuals, %d cases", a.Len(), len(a.ErrorVector(0)))
	}
	for i := 0; i < a.Len(); i++ {
		for j, score := range a.ErrorVector(i) {
			if score != b.ErrorVector(i)[j] {
				t.Fatalf("same seed should give identical populations, differ at [%d][%d]", i, j)
			}
			if score < 0 || score >= 10 {
				t.Fatalf("score %g out of range", score)
			}
		}
	}
}
