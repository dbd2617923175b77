package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingSnakeCrawl  = "Starting SnakeCrawl"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgDeadLetterBacklog              = "Dead-letter log holds undelivered events from a previous run"
	LogMsgDeadLetterUnreadable           = "Dead-letter log could not be read"
)

// =============================================================================
// Storage and Ledger
// =============================================================================

const (
	LogMsgStoreInitialized  = "State store initialized"
	LogMsgLedgerInitialized = "Ledger initialized"
	LogMsgDifficultiesReady = "Difficulty table loaded"

	ErrMsgFailedConnectDatabase  = "failed to connect to database"
	ErrMsgFailedMigrateDatabase  = "failed to migrate database"
	ErrMsgFailedCreateStateStore = "failed to create state store"
	ErrMsgFailedLoadDifficulties = "failed to load difficulty table"
	ErrMsgUnknownStorageBackend  = "unknown storage backend"
	ErrMsgUnknownLedgerMode      = "unknown ledger mode"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgWorkerPoolShutdownFailed   = "Worker pool shutdown failed"
	LogMsgDatabaseClosed             = "Database pool closed"
)
