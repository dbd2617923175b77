// Package round runs path-crawl rounds: one engine per player, driven by Transition.
package round

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/SnakeCrawl_Go/internal/board"
	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/utils"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

// BoardGenerator creates the board and path of each round
type BoardGenerator interface {
	GenerateBoard(d domain.Difficulty) (*domain.Board, error)
	GeneratePath() domain.Path
	Preview(d domain.Difficulty) (*domain.Preview, error)
	Tiers() []board.TierInfo
}

// Settler submits settlements to the ledger
type Settler interface {
	Settle(ctx context.Context, req domain.SettlementRequest) domain.SettlementResult
	Configured() bool
}

// HistoryRecorder stores finished rounds
type HistoryRecorder interface {
	Append(ctx context.Context, player string, entry domain.HistoryEntry) error
}

// Profiles exposes the player data a round needs
type Profiles interface {
	Label(ctx context.Context, player string) string
	SetActive(ctx context.Context, player string, active bool) error
}

// JobQueue runs background work
type JobQueue interface {
	Enqueue(job worker.Job) error
}

// Dependencies wires a Service. Publisher, Dice and Clock are optional. Without
// Jobs, background work such as loss settlement runs inline on the caller.
type Dependencies struct {
	Boards    BoardGenerator
	Settler   Settler
	History   HistoryRecorder
	Profiles  Profiles
	Jobs      JobQueue
	Publisher event.Publisher
	Dice      utils.IntSource
	Clock     func() time.Time
	StepDelay time.Duration
}

// Service manages every player's round
type Service interface {
	// Start places a bet on a freshly generated board
	Start(ctx context.Context, player string, stake decimal.Decimal, d domain.Difficulty) (domain.Round, error)

	// Roll draws two dice, reveals the move step by step and resolves the landing cell
	Roll(ctx context.Context, player string) (domain.RollResult, error)

	// Cashout settles the current multiplier. Declined and failed settlements are
	// reported in the result, not as errors.
	Cashout(ctx context.Context, player string) (domain.CashoutResult, error)

	// Current returns the player's latest round
	Current(ctx context.Context, player string) (domain.Round, error)

	// Preview returns a display-only board for d
	Preview(ctx context.Context, d domain.Difficulty) (*domain.Preview, error)

	Difficulties() []board.TierInfo
}

type service struct {
	deps Dependencies

	mu      sync.RWMutex
	engines map[string]*engine
}

// NewService creates a round service
func NewService(deps Dependencies) Service {
	if deps.Dice == nil {
		deps.Dice = utils.SecureRandomInt
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Jobs == nil {
		deps.Jobs = syncQueue{}
	}
	return &service{
		deps:    deps,
		engines: make(map[string]*engine),
	}
}

func (s *service) engineFor(player string, create bool) *engine {
	s.mu.RLock()
	e, ok := s.engines[player]
	s.mu.RUnlock()
	if ok || !create {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.engines[player]; ok {
		return e
	}
	e = newEngine(player, &s.deps)
	s.engines[player] = e
	return e
}

func (s *service) Start(ctx context.Context, player string, stake decimal.Decimal, d domain.Difficulty) (domain.Round, error) {
	if player == "" {
		return domain.Round{}, domain.ErrMissingIdentity
	}
	if !stake.IsPositive() {
		return domain.Round{}, domain.ErrInvalidStake
	}
	if !d.IsValid() {
		return domain.Round{}, fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, d)
	}
	if !s.deps.Settler.Configured() {
		return domain.Round{}, domain.ErrNotConfigured
	}
	return s.engineFor(player, true).start(ctx, stake, d)
}

func (s *service) Roll(ctx context.Context, player string) (domain.RollResult, error) {
	if player == "" {
		return domain.RollResult{}, domain.ErrMissingIdentity
	}
	e := s.engineFor(player, false)
	if e == nil {
		return domain.RollResult{}, domain.ErrNoActiveRound
	}
	return e.roll(ctx)
}

func (s *service) Cashout(ctx context.Context, player string) (domain.CashoutResult, error) {
	if player == "" {
		return domain.CashoutResult{}, domain.ErrMissingIdentity
	}
	if !s.deps.Settler.Configured() {
		return domain.CashoutResult{}, domain.ErrNotConfigured
	}
	e := s.engineFor(player, false)
	if e == nil {
		return domain.CashoutResult{}, domain.ErrNoActiveRound
	}
	return e.cashout(ctx)
}

func (s *service) Current(ctx context.Context, player string) (domain.Round, error) {
	if player == "" {
		return domain.Round{}, domain.ErrMissingIdentity
	}
	e := s.engineFor(player, false)
	if e == nil {
		return domain.Round{}, domain.ErrNoActiveRound
	}
	return e.snapshot(), nil
}

func (s *service) Preview(ctx context.Context, d domain.Difficulty) (*domain.Preview, error) {
	p, err := s.deps.Boards.Preview(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextPreview, err)
	}
	return p, nil
}

func (s *service) Difficulties() []board.TierInfo {
	return s.deps.Boards.Tiers()
}

func newRoundID() uuid.UUID {
	return uuid.New()
}
