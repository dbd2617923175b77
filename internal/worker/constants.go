package worker

import "time"

// Defaults
const (
	// DefaultJobTimeout bounds a single job's run time
	DefaultJobTimeout = 30 * time.Second
)

// Log Messages - Worker Pool
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobPanic   = "Worker job panicked"
	LogMsgPoolDraining     = "Worker pool draining queued jobs"
	LogMsgPoolDrainTimeout = "Worker pool shutdown deadline exceeded"
	LogMsgJobDropped       = "Job dropped, worker pool stopped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
