package round

// Error contexts
const (
	ErrContextGenerateBoard = "failed to generate board"
	ErrContextRollDice      = "failed to roll dice"
	ErrContextPreview       = "failed to generate preview"
)

// Log messages
const (
	LogMsgRoundStarted         = "Round started"
	LogMsgRoundLanded          = "Roll resolved"
	LogMsgRoundLost            = "Round lost on hazard"
	LogMsgCashoutSettled       = "Cashout settled"
	LogMsgCashoutDeclined      = "Cashout declined, round active again"
	LogMsgCashoutFailed        = "Cashout failed, round awaiting settlement"
	LogMsgHistoryAppendFailed  = "Failed to append history entry"
	LogMsgMarkerUpdateFailed   = "Failed to update active round marker"
	LogMsgPublishFailed        = "Failed to publish round event"
	LogMsgLossEnqueueFailed    = "Failed to enqueue loss settlement"
	LogMsgLossSettled          = "Loss settlement confirmed"
	LogMsgInlineJobFailed      = "Inline job failed"
)

// Job names
const (
	JobNameLossSettlement = "loss_settlement"
)

// ProfitDecimals is the precision of profits written to history
const ProfitDecimals = 3
