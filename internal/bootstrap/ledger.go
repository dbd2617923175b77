package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SnakeCrawl_Go/internal/board"
	"github.com/osse101/SnakeCrawl_Go/internal/config"
	"github.com/osse101/SnakeCrawl_Go/internal/ledger"
)

// InitializeLedger returns the simulated ledger or the HTTP gateway client
func InitializeLedger(cfg *config.Config) (ledger.Ledger, error) {
	switch cfg.LedgerMode {
	case config.LedgerSimulated, "":
		slog.Info(LogMsgLedgerInitialized, "mode", config.LedgerSimulated, "start_balance", cfg.SimulatedStartBalance)
		return ledger.NewSimulated(cfg.SimulatedStartBalance), nil

	case config.LedgerGateway:
		slog.Info(LogMsgLedgerInitialized, "mode", config.LedgerGateway, "url", cfg.LedgerURL)
		return ledger.NewGateway(cfg.LedgerURL, cfg.LedgerAPIKey), nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownLedgerMode, cfg.LedgerMode)
}

// LeaderboardEventType is the event type the leaderboard queries, empty when no
// contract package is configured.
func LeaderboardEventType(cfg *config.Config) string {
	if cfg.GamePackageID == "" {
		return ""
	}
	return ledger.EventType(cfg.GamePackageID)
}

// LoadDifficulties reads the difficulty table from cfg.DifficultyFile, or returns
// the built-in table when no file is configured.
func LoadDifficulties(cfg *config.Config) (board.Table, error) {
	table := board.DefaultDifficulties()
	source := "builtin"

	if cfg.DifficultyFile != "" {
		loaded, err := board.LoadDifficulties(cfg.DifficultyFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadDifficulties, err)
		}
		table = loaded
		source = cfg.DifficultyFile
	}

	slog.Info(LogMsgDifficultiesReady, "source", source, "tiers", len(table))
	return table, nil
}
