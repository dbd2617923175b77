package scheduler

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

// Log messages
const (
	LogMsgTickSkipped = "Scheduled job skipped, worker queue full"
	LogMsgTickStopped = "Scheduled job stopped, worker pool closed"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool Enqueuer
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop.
// A tick that finds the queue full is skipped rather than piling up.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				err := s.pool.TryEnqueue(job)
				switch {
				case errors.Is(err, worker.ErrQueueFull):
					logger.Warn(LogMsgTickSkipped, "job", fmt.Sprintf("%T", job))
				case errors.Is(err, worker.ErrPoolStopped):
					logger.Info(LogMsgTickStopped, "job", fmt.Sprintf("%T", job))
					return
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs and waits for their goroutines
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
