// Package settlement turns a finished round into a ledger call and classifies the reply.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/multiplier"
)

// Signer signs and submits a settlement call on behalf of player, returning the transaction id
type Signer interface {
	SignAndSubmit(ctx context.Context, call domain.SettlementCall, player string) (string, error)
}

// BalanceRefresher re-reads a player's balance after a confirmed settlement
type BalanceRefresher interface {
	Refresh(ctx context.Context, player string) error
}

// Config names the deployed settlement contract
type Config struct {
	PackageID string
	ObjectID  string
}

// Coordinator submits settlements and reports a tagged result
type Coordinator interface {
	// Settle never returns a Go error; failures are carried in the result
	Settle(ctx context.Context, req domain.SettlementRequest) domain.SettlementResult

	// Configured reports whether a contract package id is set
	Configured() bool
}

type coordinator struct {
	signer    Signer
	refresher BalanceRefresher
	cfg       Config
}

// NewCoordinator creates a Coordinator. refresher may be nil.
func NewCoordinator(signer Signer, refresher BalanceRefresher, cfg Config) Coordinator {
	return &coordinator{signer: signer, refresher: refresher, cfg: cfg}
}

func (c *coordinator) Configured() bool {
	return c.cfg.PackageID != ""
}

// Target returns the fully qualified contract function for packageID
func Target(packageID string) string {
	return fmt.Sprintf("%s::%s::%s", packageID, domain.SettlementModule, domain.SettlementFunction)
}

// BuildCall converts a request into the wire shape submitted to the signer
func (c *coordinator) BuildCall(req domain.SettlementRequest) domain.SettlementCall {
	return domain.SettlementCall{
		Target:       Target(c.cfg.PackageID),
		ObjectID:     c.cfg.ObjectID,
		StakeMinor:   multiplier.ToMinor(req.Stake),
		PlayerLabel:  req.PlayerLabel,
		MultiplierBP: req.MultiplierBasisPoints,
		Won:          req.Won,
	}
}

func (c *coordinator) Settle(ctx context.Context, req domain.SettlementRequest) domain.SettlementResult {
	log := logger.FromContext(ctx)

	if !c.Configured() {
		log.Warn(LogMsgNotConfiguredHit, "round_id", req.RoundID)
		return domain.SettlementResult{Outcome: domain.SettlementFailed, Err: domain.ErrNotConfigured}
	}

	call := c.BuildCall(req)
	log.Info(LogMsgSubmitting, "round_id", req.RoundID, "won", call.Won, "multiplier_bp", call.MultiplierBP, "stake_minor", call.StakeMinor)

	txID, err := c.signer.SignAndSubmit(ctx, call, req.Player)
	if err != nil {
		if IsDeclined(err) {
			log.Info(LogMsgDeclined, "round_id", req.RoundID)
			return domain.SettlementResult{Outcome: domain.SettlementDeclined, Err: domain.ErrUserDeclined}
		}
		log.Error(LogMsgFailed, "round_id", req.RoundID, "error", err)
		return domain.SettlementResult{
			Outcome: domain.SettlementFailed,
			Err:     fmt.Errorf("%s: %w", ErrContextSubmitFailed, err),
		}
	}

	log.Info(LogMsgSettled, "round_id", req.RoundID, "tx_id", txID)
	c.refresh(ctx, req.Player)
	return domain.SettlementResult{Outcome: domain.SettlementSettled, TxID: txID}
}

func (c *coordinator) refresh(ctx context.Context, player string) {
	if c.refresher == nil {
		return
	}
	if err := c.refresher.Refresh(ctx, player); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
	}
}

// IsDeclined reports whether err means the player aborted signing
func IsDeclined(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrUserDeclined) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), declinedMarker)
}
