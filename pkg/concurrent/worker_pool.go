// Copyright The FreeTogether Authors.
// SPDX-License-Identifier: MIT

// Package concurrent provides helpers for running independent tasks in parallel.
package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs a set of independent functions concurrently with a
// bounded number of workers and collects the first error.
type WorkerPool struct {
	workers int
}

// NewWorkerPool creates a worker pool with the given concurrency limit.
// A limit below one falls back to a single worker.
func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	return &WorkerPool{workers: workers}
}

// Run executes all tasks and waits for them to finish. The returned error
// is the first task error; remaining tasks still run to completion unless
// they observe the cancelled group context themselves.
func (p *WorkerPool) Run(ctx context.Context, tasks ...func() error) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, task := range tasks {
		g.Go(task)
	}

	return g.Wait()
}
