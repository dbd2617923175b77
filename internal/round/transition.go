package round

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/multiplier"
)

// Event is an input to Transition
type Event interface {
	isRoundEvent()
}

// Start places a new bet on a freshly generated board
type Start struct {
	ID         uuid.UUID
	Player     string
	Stake      decimal.Decimal
	Difficulty domain.Difficulty
	Board      *domain.Board
	Path       domain.Path
	At         time.Time
}

// BeginRoll marks a move as in flight
type BeginRoll struct{}

// Land resolves the in-flight move with the two final dice
type Land struct {
	D1, D2 int
	At     time.Time
}

// BeginCashout marks a settlement as outstanding
type BeginCashout struct{}

// SettlementResolved applies the outcome of the outstanding settlement
type SettlementResolved struct {
	Result domain.SettlementResult
	At     time.Time
}

func (Start) isRoundEvent()              {}
func (BeginRoll) isRoundEvent()          {}
func (Land) isRoundEvent()               {}
func (BeginCashout) isRoundEvent()       {}
func (SettlementResolved) isRoundEvent() {}

// Transition returns the record that follows r after ev.
// r is never modified; on error the caller keeps r unchanged.
func Transition(r domain.Round, ev Event) (domain.Round, error) {
	switch e := ev.(type) {
	case Start:
		return start(r, e)
	case BeginRoll:
		return beginRoll(r)
	case Land:
		return land(r, e)
	case BeginCashout:
		return beginCashout(r)
	case SettlementResolved:
		return resolve(r, e)
	default:
		return r, fmt.Errorf("%w: %T", domain.ErrInvalidTransition, ev)
	}
}

func start(r domain.Round, e Start) (domain.Round, error) {
	if e.Player == "" {
		return r, domain.ErrMissingIdentity
	}
	if !e.Stake.IsPositive() {
		return r, domain.ErrInvalidStake
	}
	if !e.Difficulty.IsValid() {
		return r, fmt.Errorf("%w: %q", domain.ErrUnknownDifficulty, e.Difficulty)
	}
	if e.Board == nil || len(e.Path) == 0 {
		return r, fmt.Errorf("%w: start without a board", domain.ErrInvalidTransition)
	}
	if !r.CanStart() {
		return r, domain.ErrRoundInProgress
	}

	return domain.Round{
		ID:         e.ID,
		Player:     e.Player,
		Stake:      e.Stake,
		Difficulty: e.Difficulty,
		Board:      e.Board,
		Path:       e.Path,
		Bonuses:    []float64{},
		Multiplier: multiplier.Accumulate(nil),
		Profit:     decimal.Zero,
		Status:     domain.RoundActive,
		StartedAt:  e.At,
	}, nil
}

// activeGuard rejects everything a non-active round cannot do
func activeGuard(r domain.Round) error {
	switch {
	case r.Rolling:
		return domain.ErrRollInProgress
	case r.Settling:
		return domain.ErrSettlementInProgress
	case r.Status == domain.RoundLost:
		return domain.ErrRoundLost
	case r.Status == domain.RoundIdle, r.Status == domain.RoundSettled:
		return domain.ErrNoActiveRound
	}
	return nil
}

func beginRoll(r domain.Round) (domain.Round, error) {
	if err := activeGuard(r); err != nil {
		return r, err
	}
	if r.Status != domain.RoundActive {
		// a failed cashout must be retried or the round stays awaiting settlement
		return r, domain.ErrSettlementInProgress
	}
	if r.Rolls >= domain.MaxRolls {
		return r, domain.ErrRollLimitReached
	}

	next := r.Clone()
	next.Rolling = true
	return next, nil
}

func land(r domain.Round, e Land) (domain.Round, error) {
	if !r.Rolling || r.Status != domain.RoundActive {
		return r, fmt.Errorf("%w: land without a roll in flight", domain.ErrInvalidTransition)
	}
	if !validDie(e.D1) || !validDie(e.D2) {
		return r, domain.ErrInvalidDice
	}

	next := r.Clone()
	next.Rolling = false
	next.LastDice = [2]int{e.D1, e.D2}
	next.Rolls++
	next.Position = next.Path.Index(r.Position + e.D1 + e.D2)

	cell := next.Board.At(next.Path[next.Position])
	switch cell.Kind {
	case domain.CellHazard:
		next.Status = domain.RoundLost
		next.Bonuses = []float64{}
		next.Multiplier = multiplier.Accumulate(nil)
		next.Profit = decimal.Zero
		at := e.At
		next.EndedAt = &at
	case domain.CellBonus:
		next.Bonuses = append(next.Bonuses, cell.Bonus)
		next.Multiplier = multiplier.Accumulate(next.Bonuses)
		next.Profit = multiplier.Profit(next.Stake, next.Multiplier)
	}
	return next, nil
}

func validDie(d int) bool {
	return d >= 1 && d <= domain.DiceFaces
}

func beginCashout(r domain.Round) (domain.Round, error) {
	if err := activeGuard(r); err != nil {
		return r, err
	}
	if r.Rolls < 1 {
		return r, domain.ErrCashoutNoRolls
	}

	next := r.Clone()
	next.Status = domain.RoundAwaitingSettlement
	next.Settling = true
	next.SettlementError = ""
	return next, nil
}

func resolve(r domain.Round, e SettlementResolved) (domain.Round, error) {
	if !r.Settling || r.Status != domain.RoundAwaitingSettlement {
		return r, fmt.Errorf("%w: no settlement outstanding", domain.ErrInvalidTransition)
	}

	next := r.Clone()
	next.Settling = false
	switch e.Result.Outcome {
	case domain.SettlementSettled:
		next.Status = domain.RoundSettled
		next.TxID = e.Result.TxID
		next.SettlementError = ""
		at := e.At
		next.EndedAt = &at
	case domain.SettlementDeclined:
		next.Status = domain.RoundActive
		next.SettlementError = ""
	case domain.SettlementFailed:
		next.SettlementError = e.Result.Message()
	default:
		return r, fmt.Errorf("%w: outcome %q", domain.ErrInvalidTransition, e.Result.Outcome)
	}
	return next, nil
}
