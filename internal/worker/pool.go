package worker

import (
	"context"
	"sync"
)

// Job is a unit of work, typically one claim's search/classify/aggregate
// round trip
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is whatever a job produces. Jobs report failures through the
// result rather than panicking or aborting the pool.
type Result interface {
	GetError() error
}

// Pool fans jobs out over a fixed number of goroutines. Usage is
// single-shot: Start, Submit everything, then Wait once for all results.
// A collector goroutine drains results while jobs are still being
// submitted, so the submission count is not bounded by channel capacity.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collected []Result
	drained   chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count, minimum one. Jobs
// run under a context derived from ctx, so cancelling it stops in-flight
// work.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	poolCtx, cancel := context.WithCancel(ctx)
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		drained: make(chan struct{}),
		ctx:     poolCtx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}

	go func() {
		for result := range p.results {
			p.collected = append(p.collected, result)
		}
		close(p.drained)
	}()
}

func (p *Pool) run() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after cancellation are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// every collected result. Results arrive in completion order, not
// submission order.
func (p *Pool) Wait() []Result {
	close(p.jobs)
	p.wg.Wait()
	p.closeResults()
	<-p.drained
	return p.collected
}

// Stop cancels in-flight jobs and releases the workers
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
	<-p.drained
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
