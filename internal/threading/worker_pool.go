// Package threading runs per-column work on a fixed pool of goroutines so
// the renderer does not spawn goroutines every tick.
package threading

import (
	"context"
	"runtime"
	"sync"

	"raycaster/internal/mathutil"
)

const (
	// inlineLimit is the range size below which ParallelFor runs on the caller.
	inlineLimit = 8
	minBatch    = 4
	maxBatch    = 32
)

// WorkerPool manages a pool of worker goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers. numWorkers <= 0 uses the CPU count.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
		case <-wp.quit:
			return
		}
	}
}

// Stop shuts down the worker pool. It is safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// ParallelFor calls fn for every index in [start, end) and returns when all
// calls are done. Small ranges run inline.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor with cancellation checked between
// indices. Indices skipped after cancellation are never passed to fn.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}
	total := end - start
	if total <= inlineLimit {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			fn(i)
		}
		return
	}

	batch := mathutil.IntClamp(total/wp.numWorkers, minBatch, maxBatch)
	var wg sync.WaitGroup
	for i := start; i < end; i += batch {
		chunkStart := i
		chunkEnd := mathutil.IntMin(i+batch, end)
		wg.Add(1)
		wp.jobQueue <- func() {
			defer wg.Done()
			for j := chunkStart; j < chunkEnd; j++ {
				if ctx.Err() != nil {
					return
				}
				fn(j)
			}
		}
	}
	wg.Wait()
}
