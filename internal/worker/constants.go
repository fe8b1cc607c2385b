package worker

import "time"

// ============================================================================
// Pool Configuration
// ============================================================================

// DefaultJobTimeout bounds a single job execution
const DefaultJobTimeout = 5 * time.Minute

// ============================================================================
// Log Messages
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
