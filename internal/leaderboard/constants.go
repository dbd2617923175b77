package leaderboard

import "time"

// Ranking parameters
const (
	EventWindow     = 100
	TopN            = 10
	CacheTTL        = 30 * time.Second
	DisplayDecimals = 3
	cacheKey        = "top"
)

// Error contexts
const (
	ErrContextQueryFailed = "failed to query settlement events"
)

// Log messages
const (
	LogMsgRebuilt = "Leaderboard rebuilt"
)
