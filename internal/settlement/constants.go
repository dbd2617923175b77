package settlement

// declinedMarker appears in signer errors when the player aborted signing
const declinedMarker = "user rejected"

// Error contexts
const (
	ErrContextSubmitFailed = "settlement submission failed"
)

// Log messages
const (
	LogMsgSubmitting       = "Submitting settlement"
	LogMsgSettled          = "Settlement confirmed"
	LogMsgDeclined         = "Settlement declined by player"
	LogMsgFailed           = "Settlement failed"
	LogMsgRefreshFailed    = "Balance refresh after settlement failed"
	LogMsgNotConfiguredHit = "Settlement attempted without a game package"
)
