package round

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/multiplier"
)

// engine owns one player's round. The mutex guards only reads and transitions;
// the Rolling and Settling flags reject overlapping calls while it is released.
// finalizing is set from the commit of a lost or settled record until its
// history entry and marker clear are written, and holds off the next Start.
type engine struct {
	mu         sync.Mutex
	round      domain.Round
	finalizing bool
	deps       *Dependencies
}

func newEngine(player string, deps *Dependencies) *engine {
	return &engine{round: domain.NewIdleRound(player), deps: deps}
}

func (e *engine) snapshot() domain.Round {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round.Clone()
}

// apply runs Transition under the lock and commits the result on success
func (e *engine) apply(ev Event) (prev, next domain.Round, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev = e.round
	if _, ok := ev.(Start); ok && e.finalizing {
		return prev.Clone(), prev.Clone(), domain.ErrRoundInProgress
	}
	next, err = Transition(prev, ev)
	if err != nil {
		return prev.Clone(), prev.Clone(), err
	}
	e.round = next
	if next.Status != prev.Status && (next.Status == domain.RoundLost || next.Status == domain.RoundSettled) {
		e.finalizing = true
	}
	return prev.Clone(), next.Clone(), nil
}

// finalized releases the hold taken when a terminal record was committed
func (e *engine) finalized() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finalizing = false
}

func (e *engine) start(ctx context.Context, stake decimal.Decimal, d domain.Difficulty) (domain.Round, error) {
	log := logger.FromContext(ctx)
	player := e.snapshot().Player

	b, err := e.deps.Boards.GenerateBoard(d)
	if err != nil {
		return domain.Round{}, fmt.Errorf("%s: %w", ErrContextGenerateBoard, err)
	}

	_, next, err := e.apply(Start{
		ID:         newRoundID(),
		Player:     player,
		Stake:      stake,
		Difficulty: d,
		Board:      b,
		Path:       e.deps.Boards.GeneratePath(),
		At:         e.deps.Clock(),
	})
	if err != nil {
		return domain.Round{}, err
	}

	if err := e.deps.Profiles.SetActive(ctx, player, true); err != nil {
		log.Warn(LogMsgMarkerUpdateFailed, "error", err)
	}
	log.Info(LogMsgRoundStarted, "round_id", next.ID, "difficulty", d, "stake", stake.String())
	e.publish(ctx, event.NewRoundEvent(event.RoundStarted, next, nil))
	return next, nil
}

func (e *engine) rollDice() ([2]int, error) {
	var dice [2]int
	for i := range dice {
		v, err := e.deps.Dice(1, domain.DiceFaces)
		if err != nil {
			return dice, fmt.Errorf("%s: %w", ErrContextRollDice, err)
		}
		if !validDie(v) {
			return dice, fmt.Errorf("%s: %w: %d", ErrContextRollDice, domain.ErrInvalidDice, v)
		}
		dice[i] = v
	}
	return dice, nil
}

func (e *engine) roll(ctx context.Context) (domain.RollResult, error) {
	e.mu.Lock()
	began, err := Transition(e.round, BeginRoll{})
	if err != nil {
		e.mu.Unlock()
		return domain.RollResult{}, err
	}
	dice, err := e.rollDice()
	if err != nil {
		e.mu.Unlock()
		return domain.RollResult{}, err
	}
	e.round = began
	moving := began.Clone()
	e.mu.Unlock()

	// once the move has begun it always lands, even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	steps := moving.Path.Steps(moving.Position, dice[0]+dice[1])
	e.reveal(ctx, moving, steps)

	prev, next, err := e.apply(Land{D1: dice[0], D2: dice[1], At: e.deps.Clock()})
	if err != nil {
		return domain.RollResult{}, err
	}

	landing := next.Board.At(next.Path[next.Position])
	result := domain.RollResult{
		Dice:    dice,
		Steps:   steps,
		Landing: landing,
		Lost:    next.Status == domain.RoundLost,
		Round:   next,
	}

	if result.Lost {
		e.onLoss(ctx, prev, next)
		return result, nil
	}

	logger.FromContext(ctx).Debug(LogMsgRoundLanded, "round_id", next.ID, "dice", dice, "position", next.Position, "cell", landing.Kind)
	e.publish(ctx, event.NewRoundEvent(event.RoundLanded, next, &landing))
	return result, nil
}

// reveal publishes every index the token passes, pausing StepDelay between them
func (e *engine) reveal(ctx context.Context, r domain.Round, steps []int) {
	for i, idx := range steps {
		if i > 0 && e.deps.StepDelay > 0 {
			time.Sleep(e.deps.StepDelay)
		}
		e.publish(ctx, event.NewStepEvent(r, i+1, len(steps), idx))
	}
}

func (e *engine) onLoss(ctx context.Context, prev, lost domain.Round) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRoundLost, "round_id", lost.ID, "position", lost.Position, "multiplier", prev.Multiplier.String())

	entry := domain.HistoryEntry{
		Timestamp:  e.deps.Clock(),
		Stake:      lost.Stake,
		Difficulty: lost.Difficulty,
		Multiplier: prev.Multiplier,
		Profit:     decimal.Zero,
		Result:     domain.HistoryLose,
	}
	if err := e.deps.History.Append(ctx, lost.Player, entry); err != nil {
		log.Error(LogMsgHistoryAppendFailed, "error", err)
	}
	if err := e.deps.Profiles.SetActive(ctx, lost.Player, false); err != nil {
		log.Warn(LogMsgMarkerUpdateFailed, "error", err)
	}
	e.finalized()

	landing := lost.Board.At(lost.Path[lost.Position])
	e.publish(ctx, event.NewRoundEvent(event.RoundLost, lost, &landing))

	job := &lossSettlementJob{
		settler: e.deps.Settler,
		request: domain.SettlementRequest{
			Player:                lost.Player,
			RoundID:               lost.ID.String(),
			Stake:                 lost.Stake,
			Won:                   false,
			MultiplierBasisPoints: 0,
			PlayerLabel:           e.deps.Profiles.Label(ctx, lost.Player),
		},
	}
	if err := e.deps.Jobs.Enqueue(job); err != nil {
		log.Error(LogMsgLossEnqueueFailed, "round_id", lost.ID, "error", err)
	}
}

func (e *engine) cashout(ctx context.Context) (domain.CashoutResult, error) {
	log := logger.FromContext(ctx)

	_, pending, err := e.apply(BeginCashout{})
	if err != nil {
		return domain.CashoutResult{}, err
	}

	req := domain.SettlementRequest{
		Player:                pending.Player,
		RoundID:               pending.ID.String(),
		Stake:                 pending.Stake,
		Won:                   true,
		MultiplierBasisPoints: multiplier.BasisPoints(pending.Multiplier),
		PlayerLabel:           e.deps.Profiles.Label(ctx, pending.Player),
	}

	// the settlement cannot be cancelled once submitted
	settleCtx := context.WithoutCancel(ctx)
	res := e.deps.Settler.Settle(settleCtx, req)

	_, next, err := e.apply(SettlementResolved{Result: res, At: e.deps.Clock()})
	if err != nil {
		return domain.CashoutResult{}, err
	}

	switch res.Outcome {
	case domain.SettlementSettled:
		log.Info(LogMsgCashoutSettled, "round_id", next.ID, "tx_id", res.TxID, "multiplier_bp", req.MultiplierBasisPoints)
		entry := domain.HistoryEntry{
			Timestamp:  e.deps.Clock(),
			Stake:      next.Stake,
			Difficulty: next.Difficulty,
			Multiplier: next.Multiplier,
			Profit:     next.Profit.Round(ProfitDecimals),
			Result:     domain.HistoryWin,
		}
		if err := e.deps.History.Append(settleCtx, next.Player, entry); err != nil {
			log.Error(LogMsgHistoryAppendFailed, "error", err)
		}
		if err := e.deps.Profiles.SetActive(settleCtx, next.Player, false); err != nil {
			log.Warn(LogMsgMarkerUpdateFailed, "error", err)
		}
		e.finalized()
	case domain.SettlementDeclined:
		log.Info(LogMsgCashoutDeclined, "round_id", next.ID)
	case domain.SettlementFailed:
		log.Warn(LogMsgCashoutFailed, "round_id", next.ID, "error", res.Err)
	}

	e.publish(settleCtx, event.NewSettlementEvent(next, req, res))
	return domain.CashoutResult{
		Outcome: res.Outcome,
		TxID:    res.TxID,
		Message: res.Message(),
		Round:   next,
	}, nil
}

func (e *engine) publish(ctx context.Context, evt event.Event) {
	if e.deps.Publisher == nil {
		return
	}
	if err := e.deps.Publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
