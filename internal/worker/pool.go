package worker

import (
	"context"
	"sync"
)

// Job is a unit of work with a fixed position in its batch
type Job interface {
	// Index is the job's position; results are returned in index order
	Index() int

	// Execute runs the job
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	Err() error
}

// Pool runs jobs concurrently with a bounded number of workers while
// preserving batch order in the returned results.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the configured worker count
func (p *Pool) Workers() int {
	return p.workers
}

// Run executes all jobs and returns their results indexed by job position.
// Individual job failures land in the result slice; the batch never aborts
// because one job failed.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	if len(jobs) == 0 {
		return []Result{}
	}

	results := make([]Result, len(jobs))
	semaphore := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, job := range jobs {
		wg.Add(1)
		go func(j Job) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[j.Index()] = &cancelledResult{err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[j.Index()] = j.Execute(ctx)
		}(job)
	}

	wg.Wait()
	return results
}

type cancelledResult struct {
	err error
}

func (r *cancelledResult) Err() error {
	return r.err
}
