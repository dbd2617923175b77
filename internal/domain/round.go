package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoundStatus is the lifecycle state of a round
type RoundStatus string

const (
	RoundIdle               RoundStatus = "idle"
	RoundActive             RoundStatus = "active"
	RoundLost               RoundStatus = "lost"
	RoundAwaitingSettlement RoundStatus = "awaiting_settlement"
	RoundSettled            RoundStatus = "settled"
)

// Round is the single record holding a player's live session.
// Multiplier and Profit are derived from Bonuses and Stake.
type Round struct {
	ID              uuid.UUID       `json:"id"`
	Player          string          `json:"player"`
	Stake           decimal.Decimal `json:"stake"`
	Difficulty      Difficulty      `json:"difficulty"`
	Board           *Board          `json:"board,omitempty"`
	Path            Path            `json:"path,omitempty"`
	Position        int             `json:"position"`
	Rolls           int             `json:"rolls"`
	Bonuses         []float64       `json:"bonuses"`
	Multiplier      decimal.Decimal `json:"multiplier"`
	Profit          decimal.Decimal `json:"profit"`
	Status          RoundStatus     `json:"status"`
	Rolling         bool            `json:"rolling"`
	Settling        bool            `json:"settling"`
	LastDice        [2]int          `json:"last_dice"`
	SettlementError string          `json:"settlement_error,omitempty"`
	TxID            string          `json:"tx_id,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at,omitempty"`
}

// NewIdleRound returns the record of a player with no round yet
func NewIdleRound(player string) Round {
	return Round{
		Player:     player,
		Status:     RoundIdle,
		Bonuses:    []float64{},
		Multiplier: decimal.NewFromInt(1),
		Profit:     decimal.Zero,
	}
}

// RollsLeft returns how many rolls remain before the round is cashout-only
func (r Round) RollsLeft() int {
	if r.Rolls >= MaxRolls {
		return 0
	}
	return MaxRolls - r.Rolls
}

// CanStart reports whether a new round may replace this one
func (r Round) CanStart() bool {
	switch r.Status {
	case RoundIdle, RoundLost, RoundSettled:
		return true
	}
	return false
}

// Clone returns a copy that shares no slices with r
func (r Round) Clone() Round {
	c := r
	c.Bonuses = append([]float64{}, r.Bonuses...)
	if r.EndedAt != nil {
		t := *r.EndedAt
		c.EndedAt = &t
	}
	return c
}

// RollResult describes one resolved roll
type RollResult struct {
	Dice    [2]int    `json:"dice"`
	Steps   []int     `json:"steps"`
	Landing BoardCell `json:"landing"`
	Lost    bool      `json:"lost"`
	Round   Round     `json:"round"`
}

// CashoutResult describes the outcome of a cashout attempt
type CashoutResult struct {
	Outcome SettlementOutcome `json:"outcome"`
	TxID    string            `json:"tx_id,omitempty"`
	Message string            `json:"message,omitempty"`
	Round   Round             `json:"round"`
}

// Preview is a board/path pair generated for display only
type Preview struct {
	Difficulty Difficulty `json:"difficulty"`
	Board      *Board     `json:"board"`
	Path       Path       `json:"path"`
}
