package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementRequest is the outcome of a terminal round handed to the ledger
type SettlementRequest struct {
	Player                string          `json:"player"`
	RoundID               string          `json:"round_id"`
	Stake                 decimal.Decimal `json:"stake"`
	Won                   bool            `json:"won"`
	MultiplierBasisPoints uint64          `json:"multiplier_basis_points"`
	PlayerLabel           string          `json:"player_label"`
}

// SettlementCall is the wire shape submitted to the signer
type SettlementCall struct {
	Target       string `json:"target"`
	ObjectID     string `json:"object_id"`
	StakeMinor   uint64 `json:"stake_minor"`
	PlayerLabel  string `json:"player_label"`
	MultiplierBP uint64 `json:"multiplier_bp"`
	Won          bool   `json:"won"`
}

// SettlementOutcome classifies a settlement attempt
type SettlementOutcome string

const (
	SettlementSettled  SettlementOutcome = "settled"
	SettlementDeclined SettlementOutcome = "declined"
	SettlementFailed   SettlementOutcome = "failed"
)

// SettlementResult is returned by every settlement attempt
type SettlementResult struct {
	Outcome SettlementOutcome
	TxID    string
	Err     error
}

// Message returns the user-visible status for the result
func (r SettlementResult) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// GameResultEvent is one settlement event recorded by the ledger
type GameResultEvent struct {
	TxID         string    `json:"tx_id"`
	Player       string    `json:"player"`
	Nickname     string    `json:"nickname"`
	StakeMinor   uint64    `json:"stake_minor"`
	PayoutMinor  uint64    `json:"payout_minor"`
	MultiplierBP uint64    `json:"multiplier_bp"`
	Won          bool      `json:"won"`
	Timestamp    time.Time `json:"timestamp"`
}
