package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/attsim/internal/attitude"
)

// Job is one independent run of a sweep.
type Job struct {
	Sim    *Simulation
	X0     attitude.State
	Config Config
}

// BuildFunc constructs the job for run i. It must return a Simulation whose
// components are not shared with any other run.
type BuildFunc func(i int) (Job, error)

// Sweep executes n runs concurrently with at most workers in flight
// (workers <= 0 means unlimited). Results are indexed by run. The first
// failing build or run cancels runs that have not started yet.
func Sweep(ctx context.Context, n, workers int, build BuildFunc) ([]*Result, error) {
	results := make([]*Result, n)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := 0; i < n; i++ {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			job, err := build(idx)
			if err != nil {
				return fmt.Errorf("run %d: build: %w", idx, err)
			}

			res, err := job.Sim.Run(job.Config, job.X0)
			if err != nil {
				return fmt.Errorf("run %d: %w", idx, err)
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
