package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Round error messages
	ErrMsgStartRoundFailed   = "Failed to start round"
	ErrMsgRollFailed         = "Failed to roll"
	ErrMsgCashoutFailed      = "Failed to cash out"
	ErrMsgGetRoundFailed     = "Failed to get round"
	ErrMsgPreviewFailed      = "Failed to generate board preview"
	ErrMsgInvalidStakeFormat = "stake must be a decimal number"

	// Player and history error messages
	ErrMsgGetHistoryFailed   = "Failed to get history"
	ErrMsgGetNicknameFailed  = "Failed to get nickname"
	ErrMsgSetNicknameFailed  = "Failed to set nickname"
	ErrMsgGetLeaderboardFail = "Failed to get leaderboard"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgSettlementFailed     = "Settlement failed, try cashing out again"
	ErrMsgSettlementDeclined   = "Settlement was declined, the round is still active"
	ErrMsgLedgerUnavailable    = "Ledger is temporarily unavailable"
	ErrMsgReadinessCheckFailed = "database connection failed"
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)
