package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SnakeCrawl_Go/internal/testing/leaktest"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

type tickJob struct {
	runs atomic.Int32
}

func (j *tickJob) Process(ctx context.Context) error {
	j.runs.Add(1)
	return nil
}

// stuckJob holds its worker until release closes
type stuckJob struct {
	release chan struct{}
}

func (j *stuckJob) Process(ctx context.Context) error {
	<-j.release
	return nil
}

// fullQueue rejects every job as if the pool were saturated
type fullQueue struct {
	attempts atomic.Int32
}

func (q *fullQueue) TryEnqueue(job worker.Job) error {
	q.attempts.Add(1)
	return worker.ErrQueueFull
}

func TestSchedule_RunsRepeatedly(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &tickJob{}
	sched.Schedule(10*time.Millisecond, job)

	require.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestSchedule_FullQueueSkipsTicks(t *testing.T) {
	q := &fullQueue{}
	sched := New(q)
	sched.Schedule(5*time.Millisecond, &tickJob{})

	require.Eventually(t, func() bool { return q.attempts.Load() >= 3 }, time.Second, time.Millisecond)
	sched.Stop()
}

func TestSchedule_BusyWorkerDoesNotPileUp(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()

	stuck := &stuckJob{release: make(chan struct{})}
	require.NoError(t, pool.TryEnqueue(stuck))

	job := &tickJob{}
	sched := New(pool)
	sched.Schedule(2*time.Millisecond, job)
	time.Sleep(30 * time.Millisecond)
	sched.Stop()

	close(stuck.release)
	pool.Stop()

	// one queued tick at most; the rest were skipped
	assert.LessOrEqual(t, job.runs.Load(), int32(1))
}

func TestStop_IdempotentAndLeakFree(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(1, 1)
	pool.Start()

	sched := New(pool)
	sched.Schedule(time.Millisecond, &tickJob{})
	sched.Schedule(time.Millisecond, &tickJob{})
	time.Sleep(10 * time.Millisecond)

	sched.Stop()
	sched.Stop()
	pool.Stop()

	checker.Check(1)
}

func TestSchedule_ExitsWhenPoolStops(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	pool.Stop()

	sched := New(pool)
	sched.Schedule(time.Millisecond, &tickJob{})

	done := make(chan struct{})
	go func() {
		sched.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled goroutine did not exit after the pool stopped")
	}
}
