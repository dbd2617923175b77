package history

// Pagination
const (
	// DefaultPageSize is used when a caller does not ask for a page size
	DefaultPageSize = 10

	// MaxPageSize caps a single page
	MaxPageSize = 100
)

// Error contexts
const (
	ErrContextAppendFailed = "failed to append history entry"
	ErrContextListFailed   = "failed to list history"
)

// Log messages
const (
	LogMsgEntryAppended = "History entry appended"
)
