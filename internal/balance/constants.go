package balance

import "time"

// Cache configuration
const (
	DefaultCacheSize  = 1024
	DefaultCacheTTL   = 10 * time.Minute
	DefaultFreshness  = 10 * time.Second
	DefaultTrackLimit = 4096
	DefaultTrackIdle  = 15 * time.Minute
	DisplayDecimals   = 3
)

// JobNameRefresh names the periodic refresh job
const JobNameRefresh = "balance_refresh"

// Error contexts
const (
	ErrContextReadFailed = "failed to read balance"
)

// Log messages
const (
	LogMsgRefreshed      = "Balance refreshed"
	LogMsgReadDegraded   = "Balance read failed, serving last known value"
	LogMsgTracked        = "Balance tracking started"
	LogMsgTrackedRefresh = "Tracked balance refresh failed"
	LogMsgPublishFailed  = "Failed to publish balance update"
)
