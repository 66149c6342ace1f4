package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Individual is an opaque candidate plus its error vector: one non-negative
// score per test case, lower is better.
type Individual struct {
	ID     string    `json:"id"`
	Errors []float64 `json:"errors"`
}

type Population struct {
	VersionedRecord
	ID          string       `json:"id"`
	Individuals []Individual `json:"individuals"`
}

// Len and ErrorVector give selectors read-only access to the candidates.
func (p Population) Len() int { return len(p.Individuals) }

func (p Population) ErrorVector(i int) []float64 { return p.Individuals[i].Errors }

type RunSummary struct {
	VersionedRecord
	RunID          string  `json:"run_id"`
	PopulationID   string  `json:"population_id"`
	Selector       string  `json:"selector"`
	Epsilon        float64 `json:"epsilon,omitempty"`
	TournamentSize int     `json:"tournament_size,omitempty"`
	Trials         int     `json:"trials"`
	Seed           int64   `json:"seed"`
	Workers        int     `json:"workers"`
	ElapsedMillis  int64   `json:"elapsed_ms"`
	ChiSquare      float64 `json:"chi_square"`
	PValue         float64 `json:"p_value"`
	CreatedAtUTC   string  `json:"created_at_utc"`
}

// WinCount records how often one individual won across a batch of trials.
type WinCount struct {
	Index        int     `json:"index"`
	IndividualID string  `json:"individual_id"`
	Wins         int     `json:"wins"`
	Frequency    float64 `json:"frequency"`
}
