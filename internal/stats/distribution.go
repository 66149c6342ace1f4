package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrNoTrials = errors.New("distribution has no recorded trials")

// Distribution accumulates winner counts over repeated selection trials
// against a fixed population.
type Distribution struct {
	counts []int
	trials int
}

func NewDistribution(populationSize int) (*Distribution, error) {
	if populationSize <= 0 {
		return nil, fmt.Errorf("invalid population size: %d", populationSize)
	}
	return &Distribution{counts: make([]int, populationSize)}, nil
}

func (d *Distribution) Record(winner int) error {
	if winner < 0 || winner >= len(d.counts) {
		return fmt.Errorf("winner index %d out of range [0,%d)", winner, len(d.counts))
	}
	d.counts[winner]++
	d.trials++
	return nil
}

func (d *Distribution) RecordAll(winners []int) error {
	for _, w := range winners {
		if err := d.Record(w); err != nil {
			return err
		}
	}
	return nil
}

func (d *Distribution) Trials() int { return d.trials }

func (d *Distribution) Counts() []int {
	return append([]int(nil), d.counts...)
}

func (d *Distribution) Frequencies() []float64 {
	freqs := make([]float64, len(d.counts))
	if d.trials == 0 {
		return freqs
	}
	for i, count := range d.counts {
		freqs[i] = float64(count) / float64(d.trials)
	}
	return freqs
}

// Summary reports the spread of wins across the population.
type Summary struct {
	Trials     int
	MeanWins   float64
	StdDevWins float64
	MaxWins    int
	Winners    int
}

func (d *Distribution) Summarize() Summary {
	wins := make([]float64, len(d.counts))
	maxWins := 0
	winners := 0
	for i, count := range d.counts {
		wins[i] = float64(count)
		if count > maxWins {
			maxWins = count
		}
		if count > 0 {
			winners++
		}
	}
	return Summary{
		Trials:     d.trials,
		MeanWins:   stat.Mean(wins, nil),
		StdDevWins: stat.StdDev(wins, nil),
		MaxWins:    maxWins,
		Winners:    winners,
	}
}

// ChiSquareUniform tests the observed wins against a uniform winner
// distribution. It returns the chi-squared statistic and the p-value for
// len(counts)-1 degrees of freedom; small p-values reject uniformity.
func (d *Distribution) ChiSquareUniform() (statistic, p float64, err error) {
	if d.trials == 0 {
		return 0, 0, ErrNoTrials
	}
	if len(d.counts) == 1 {
		return 0, 1, nil
	}

	obs := make([]float64, len(d.counts))
	exp := make([]float64, len(d.counts))
	expected := float64(d.trials) / float64(len(d.counts))
	for i, count := range d.counts {
		obs[i] = float64(count)
		exp[i] = expected
	}

	statistic = stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(len(d.counts) - 1)}
	p = 1 - dist.CDF(statistic)
	return statistic, p, nil
}
