// Package ledger talks to the external ledger that holds balances and records settlements.
package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/settlement"
)

// BalanceReader reads an owner's native coin balance in minor units
type BalanceReader interface {
	Balance(ctx context.Context, owner string) (uint64, error)
}

// EventQuerier returns recorded settlement events, newest first
type EventQuerier interface {
	QueryEvents(ctx context.Context, eventType string, limit int) ([]domain.GameResultEvent, error)
}

// Ledger is everything the service needs from the external ledger
type Ledger interface {
	settlement.Signer
	BalanceReader
	EventQuerier
}

// EventType returns the fully qualified settlement event type for packageID
func EventType(packageID string) string {
	return fmt.Sprintf("%s::%s::%s", packageID, domain.SettlementModule, domain.GameResultEventType)
}

// StatusError is a non-2xx reply from the gateway
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s %d: %s", ErrMsgUnexpectedStatus, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %d (%s): %s", ErrMsgUnexpectedStatus, e.Status, e.Code, e.Message)
}

// Unwrap maps a rejected signature onto domain.ErrUserDeclined
func (e *StatusError) Unwrap() error {
	if e.Code == ErrorCodeRejected {
		return domain.ErrUserDeclined
	}
	return nil
}

// Retryable reports whether the request may succeed if sent again
func (e *StatusError) Retryable() bool {
	return e.Status >= 500
}
