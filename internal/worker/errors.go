package worker

import "errors"

var (
	// ErrPoolStopped is returned when enqueueing after Shutdown
	ErrPoolStopped = errors.New("worker pool stopped")

	// ErrQueueFull is returned by TryEnqueue when no slot is free
	ErrQueueFull = errors.New("worker queue full")
)
