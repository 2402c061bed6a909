package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// ParallelExecutorImpl implements the ParallelExecutor interface
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
}

// NewParallelExecutor creates a new parallel executor running one task at a
// time until SetMaxConcurrency raises the limit.
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: domain.DefaultWorkers,
	}
}

// Execute calls task for every index in [0, count). Tasks are started in
// index order; the first error cancels the context of the remaining tasks
// and is returned.
func (pe *ParallelExecutorImpl) Execute(ctx context.Context, count int, task func(ctx context.Context, index int) error) error {
	if count <= 0 {
		return nil
	}

	if pe.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pe.timeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	if pe.maxConcurrency > 0 {
		g.SetLimit(pe.maxConcurrency)
	}

	for i := 0; i < count; i++ {
		// Stop scheduling once a task failed or the caller gave up
		if gctx.Err() != nil {
			break
		}
		index := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx, index)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// SetMaxConcurrency sets the maximum number of concurrent tasks. Zero or
// less removes the limit.
func (pe *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	pe.maxConcurrency = max
}

// SetTimeout bounds the whole Execute call. Zero disables the timeout.
func (pe *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	pe.timeout = timeout
}
