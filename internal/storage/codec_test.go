package storage

import (
	"errors"
	"testing"

	"lexicase/internal/model"
)

func TestPopulationCodecRoundTrip(t *testing.T) {
	input := model.Population{
		VersionedRecord: Stamp(),
		ID:              "pop-1",
		Individuals: []model.Individual{
			{ID: "ind-0", Errors: []float64{0, 5, 3}},
		},
	}

	payload, err := EncodePopulation(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodePopulation(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.ID != "pop-1" || output.Len() != 1 {
		t.Fatalf("unexpected population: %+v", output)
	}
	if output.Individuals[0].Errors[1] != 5 {
		t.Fatalf("unexpected error vector: %v", output.Individuals[0].Errors)
	}
}

func TestDecodePopulationVersionMismatch(t *testing.T) {
	stale := model.Population{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 0, CodecVersion: CurrentCodecVersion},
		ID:              "pop-stale",
	}
	payload, err := EncodePopulation(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodePopulation(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("got %v, want ErrVersionMismatch", err)
	}
}

func TestRunSummaryCodecRoundTrip(t *testing.T) {
	input := model.RunSummary{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		Selector:        "epsilon_lexicase",
		Epsilon:         0.25,
		Trials:          5000,
	}

	payload, err := EncodeRunSummary(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeRunSummary(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.Selector != "epsilon_lexicase" || output.Epsilon != 0.25 {
		t.Fatalf("unexpected summary: %+v", output)
	}
}

func TestDecodeRunSummaryVersionMismatch(t *testing.T) {
	stale := model.RunSummary{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: 99},
		RunID:           "run-stale",
	}
	payload, err := EncodeRunSummary(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRunSummary(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("got %v, want ErrVersionMismatch", err)
	}
}

func TestWinDistributionCodecRoundTrip(t *testing.T) {
	input := []model.WinCount{
		{Index: 0, IndividualID: "ind-0", Wins: 3, Frequency: 0.75},
		{Index: 1, IndividualID: "ind-1", Wins: 1, Frequency: 0.25},
	}

	payload, err := EncodeWinDistribution(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeWinDistribution(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(output) != 2 || output[1].IndividualID != "ind-1" {
		t.Fatalf("unexpected win distribution: %+v", output)
	}
}
