package ledger

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// ErrInsufficientFunds is returned when a stake exceeds the simulated balance
var ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

// Simulated is an in-process ledger for local play and tests.
// Every owner starts with the same balance; a won play pays stake * bp / 100.
type Simulated struct {
	mu           sync.Mutex
	startBalance uint64
	balances     map[string]uint64
	events       []domain.GameResultEvent
	rejectNext   int
	clock        func() time.Time
}

// NewSimulated creates a simulated ledger funding each new owner with startBalance minor units
func NewSimulated(startBalance uint64) *Simulated {
	return &Simulated{
		startBalance: startBalance,
		balances:     make(map[string]uint64),
		clock:        time.Now,
	}
}

// RejectNext makes the next n submissions fail as if the player declined to sign
func (s *Simulated) RejectNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectNext = n
}

// SignAndSubmit applies the play to the owner's balance and records a GameResult event
func (s *Simulated) SignAndSubmit(ctx context.Context, call domain.SettlementCall, player string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)
	if s.rejectNext > 0 {
		s.rejectNext--
		log.Info(LogMsgSimulatedRejected, "player", player)
		return "", domain.ErrUserDeclined
	}

	balance := s.balanceLocked(player)
	if call.StakeMinor > balance {
		return "", ErrInsufficientFunds
	}

	var payout uint64
	if call.Won {
		payout = Payout(call.StakeMinor, call.MultiplierBP)
	}
	s.balances[player] = balance - call.StakeMinor + payout

	txID := simulatedTxIDPrefix + uuid.NewString()
	s.events = append(s.events, domain.GameResultEvent{
		TxID:         txID,
		Player:       player,
		Nickname:     call.PlayerLabel,
		StakeMinor:   call.StakeMinor,
		PayoutMinor:  payout,
		MultiplierBP: call.MultiplierBP,
		Won:          call.Won,
		Timestamp:    s.clock(),
	})
	log.Info(LogMsgSimulatedSettled, "tx_id", txID, "won", call.Won, "payout_minor", payout)
	return txID, nil
}

// Balance returns the owner's simulated balance
func (s *Simulated) Balance(ctx context.Context, owner string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(owner), nil
}

// QueryEvents returns up to limit recorded plays, newest first. Any type naming
// the GameResult event matches.
func (s *Simulated) QueryEvents(ctx context.Context, eventType string, limit int) ([]domain.GameResultEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(eventType, domain.GameResultEventType) {
		return []domain.GameResultEvent{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.GameResultEvent, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

func (s *Simulated) balanceLocked(owner string) uint64 {
	b, ok := s.balances[owner]
	if !ok {
		b = s.startBalance
		s.balances[owner] = b
	}
	return b
}

// Payout returns stake * bp / 100 floored, saturating at the maximum uint64
func Payout(stakeMinor, multiplierBP uint64) uint64 {
	p := new(big.Int).SetUint64(stakeMinor)
	p.Mul(p, new(big.Int).SetUint64(multiplierBP))
	p.Quo(p, big.NewInt(domain.BasisPointScale))
	if !p.IsUint64() {
		return ^uint64(0)
	}
	return p.Uint64()
}
