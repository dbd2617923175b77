package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryResult is the final result of a recorded round
type HistoryResult string

const (
	HistoryWin  HistoryResult = "win"
	HistoryLose HistoryResult = "lose"
)

// HistoryEntry is one terminal round in a player's history
type HistoryEntry struct {
	Timestamp  time.Time       `json:"timestamp"`
	Stake      decimal.Decimal `json:"stake"`
	Difficulty Difficulty      `json:"difficulty"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Profit     decimal.Decimal `json:"profit"`
	Result     HistoryResult   `json:"result"`
}

// HistoryPage is one page of a player's history, newest first
type HistoryPage struct {
	Entries    []HistoryEntry `json:"entries"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	Total      int            `json:"total"`
}

// LeaderboardEntry is one ranked player
type LeaderboardEntry struct {
	Rank        int             `json:"rank"`
	Player      string          `json:"player"`
	Nickname    string          `json:"nickname"`
	TotalPayout decimal.Decimal `json:"total_payout"`
	Wins        int             `json:"wins"`
}

// Balance is a player's ledger balance
type Balance struct {
	Player    string    `json:"player"`
	Minor     uint64    `json:"minor"`
	Display   string    `json:"display"`
	Stale     bool      `json:"stale"`
	UpdatedAt time.Time `json:"updated_at"`
}
