// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package modbuscrc

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Cancellation is checked once every pollInterval iterations
const pollInterval = 1 << 12

// BenchmarkResult holds the outcome of a repeated calculation
type BenchmarkResult struct {
	Checksum   Checksum
	Iterations int           // iterations actually completed
	Total      time.Duration // wall-clock time for all iterations
	Average    time.Duration // Total / Iterations
	Single     time.Duration // one standalone calculation before the loop
}

func (r *BenchmarkResult) finish(completed int, total time.Duration) {
	r.Iterations = completed
	r.Total = total
	if completed > 0 {
		r.Average = total / time.Duration(completed)
	}
}

// Benchmark calculates the checksum of data iterations times and reports
// the last checksum with timing. Iterations below MinIterations run once.
func Benchmark(data []byte, iterations int) BenchmarkResult {
	result, _ := BenchmarkContext(context.Background(), data, iterations)
	return result
}

// BenchmarkContext is Benchmark with cancellation between iterations.
// On cancellation the partial result is returned with ctx.Err().
func BenchmarkContext(ctx context.Context, data []byte, iterations int) (BenchmarkResult, error) {
	if iterations < MinIterations {
		iterations = MinIterations
	}

	var result BenchmarkResult
	start := time.Now()
	result.Checksum = Calculate(data)
	result.Single = time.Since(start)

	completed := 0
	start = time.Now()
	for completed < iterations {
		if completed%pollInterval == 0 {
			if err := ctx.Err(); err != nil {
				result.finish(completed, time.Since(start))
				return result, err
			}
		}
		result.Checksum = Calculate(data)
		completed++
	}
	result.finish(completed, time.Since(start))

	return result, nil
}

// BenchmarkParallel spreads the iterations over workers goroutines. Each
// iteration still uses its own engine; only the lookup tables are shared.
// Total is the wall-clock time until every worker has finished.
func BenchmarkParallel(ctx context.Context, data []byte, iterations, workers int) (BenchmarkResult, error) {
	if iterations < MinIterations {
		iterations = MinIterations
	}
	if workers > iterations {
		workers = iterations
	}
	if workers <= 1 {
		return BenchmarkContext(ctx, data, iterations)
	}

	var result BenchmarkResult
	start := time.Now()
	result.Checksum = Calculate(data)
	result.Single = time.Since(start)

	sums := make([]Checksum, workers)
	counts := make([]int, workers)
	share, extra := iterations/workers, iterations%workers

	g, gctx := errgroup.WithContext(ctx)
	start = time.Now()
	for w := 0; w < workers; w++ {
		n := share
		if w < extra {
			n++
		}
		g.Go(func() error {
			for i := 0; i < n; i++ {
				if i%pollInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				sums[w] = Calculate(data)
				counts[w]++
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)

	completed := 0
	for w, c := range counts {
		completed += c
		if c > 0 {
			result.Checksum = sums[w]
		}
	}
	result.finish(completed, elapsed)

	return result, err
}
