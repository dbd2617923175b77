package handler

import "time"

// Query parameter names
const (
	QueryParamPlayer     = "player"
	QueryParamDifficulty = "difficulty"
	QueryParamPage       = "page"
	QueryParamPageSize   = "page_size"
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgRoundStarted    = "Round start requested"
	LogMsgCashoutOutcome  = "Cashout handled"
	LogMsgReadinessFailed = "Readiness check failed"
)

// ReadinessTimeout bounds the database ping of /readyz
const ReadinessTimeout = 2 * time.Second
