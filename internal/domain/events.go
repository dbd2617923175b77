package domain

// Event type constants used across the application for event bus subscriptions,
// SSE streaming and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "round.started")
const (
	// EventTypeRoundStarted is published when a player places a bet
	EventTypeRoundStarted = "round.started"

	// EventTypeRoundStep is published for every cell the token passes during a move
	EventTypeRoundStep = "round.step"

	// EventTypeRoundLanded is published when a roll resolves without a loss
	EventTypeRoundLanded = "round.landed"

	// EventTypeRoundLost is published when the token lands on a hazard
	EventTypeRoundLost = "round.lost"

	// EventTypeRoundCashedOut is published when a cashout settles
	EventTypeRoundCashedOut = "round.cashed_out"

	// EventTypeSettlementDeclined is published when the player declines signing
	EventTypeSettlementDeclined = "settlement.declined"

	// EventTypeSettlementFailed is published when the ledger rejects a settlement
	EventTypeSettlementFailed = "settlement.failed"

	// EventTypeBalanceUpdated is published after a balance refresh
	EventTypeBalanceUpdated = "balance.updated"
)
