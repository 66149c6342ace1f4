package selection

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// SelectN performs n independent selections with replacement. Winners may
// repeat across the batch; no state carries over between invocations.
func SelectN(rng *rand.Rand, pop Population, sel Selector, n int) ([]int, error) {
	if sel == nil {
		return nil, ErrNilSelector
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid selection count: %d", n)
	}

	winners := make([]int, n)
	for i := 0; i < n; i++ {
		winner, err := sel.Select(rng, pop)
		if err != nil {
			return nil, err
		}
		winners[i] = winner
	}
	return winners, nil
}

// SelectNParallel performs n independent selections across a worker pool.
// Each worker owns an rng seeded from seed+worker, so no generator is shared
// between goroutines. The population is only read.
func SelectNParallel(ctx context.Context, pop Population, sel Selector, n, workers int, seed int64) ([]int, error) {
	if sel == nil {
		return nil, ErrNilSelector
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid selection count: %d", n)
	}
	if _, err := ValidatePopulation(pop); err != nil {
		return nil, err
	}
	if n == 0 {
		return []int{}, nil
	}

	workerCount := workers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > n {
		workerCount = n
	}

	type result struct {
		idx    int
		winner int
		err    error
	}

	jobs := make(chan int)
	results := make(chan result, n)

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		rng := rand.New(rand.NewSource(seed + int64(w)))
		go func(rng *rand.Rand) {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j, err: err}
					continue
				}
				winner, err := sel.Select(rng, pop)
				results <- result{idx: j, winner: winner, err: err}
			}
		}(rng)
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(results)

	winners := make([]int, n)
	for res := range results {
		if res.err != nil {
			return nil, res.err
		}
		winners[res.idx] = res.winner
	}
	return winners, nil
}
