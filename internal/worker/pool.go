package worker

import (
	"context"
	"sync"
	"time"

	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs on a fixed set of workers. Card imports go
// through here so a large upload never blocks the request that queued it.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     logger.Default().WithPrefix("worker-pool"),
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)

			for {
				select {
				case <-ctx.Done():
					return
				case job := <-p.jobs:
					if job == nil {
						return
					}

					jobLog := workerLog.WithField("job", job.Name())
					start := time.Now()

					if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
						jobLog.Error("job failed after %v: %v", time.Since(start), err)
					} else {
						jobLog.Info("job completed in %v", time.Since(start))
					}
				}
			}
		}(i + 1)
	}
}

// Stop drains the queue, waits for in-flight jobs and releases the workers.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// TrySubmit queues a job without blocking. It reports false when the queue
// is full so the handler can tell the client to retry.
func (p *Pool) TrySubmit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
