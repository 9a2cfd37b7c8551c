// Package scheduler runs units of work on a fixed pool of workers and hands
// back futures for them.
package scheduler

import (
	"context"
	"sync"

	"github.com/agrilabs/fivetran-sync-agent/internal/models"
)

// WorkFn is a unit of work. The context is cancelled when the future is
// stopped or the scheduler closes.
type WorkFn func(ctx context.Context) (any, error)

type job struct {
	fn     WorkFn
	ctx    context.Context
	future *models.Future[models.Result[any]]
}

type Scheduler struct {
	queue  chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(numWorkers int) *Scheduler {
	if numWorkers < 1 {
		numWorkers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		queue:  make(chan job),
		ctx:    ctx,
		cancel: cancel,
	}

	s.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go s.worker()
	}

	return s
}

// AddWork enqueues fn and returns a future for its result. Stopping the
// future cancels the context fn runs with.
func (s *Scheduler) AddWork(fn WorkFn) *models.Future[models.Result[any]] {
	ctx, cancel := context.WithCancel(s.ctx)
	future := models.NewFuture[models.Result[any]](cancel)

	select {
	case s.queue <- job{fn: fn, ctx: ctx, future: future}:
	case <-s.ctx.Done():
		cancel()
		future.Resolve(models.Result[any]{Err: s.ctx.Err()})
	}

	return future
}

// Close cancels any queued or running work and blocks until all workers have
// exited.
func (s *Scheduler) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case j := <-s.queue:
			value, err := j.fn(j.ctx)
			j.future.Resolve(models.Result[any]{Value: value, Err: err})
		}
	}
}
