package round

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

const testPlayer = "0xabc"

type testEnv struct {
	svc      Service
	settler  *MockSettler
	history  *MockHistory
	profiles *MockProfiles
	pub      *recordingPublisher
	jobs     *inlineJobs
}

func newTestEnv(t *testing.T, layout map[int]domain.BoardCell, dice ...int) *testEnv {
	t.Helper()
	env := &testEnv{
		settler:  new(MockSettler),
		history:  new(MockHistory),
		profiles: new(MockProfiles),
		pub:      &recordingPublisher{},
		jobs:     &inlineJobs{},
	}
	env.settler.On("Configured").Return(true).Maybe()
	env.profiles.On("Label", mock.Anything, testPlayer).Return("Viper").Maybe()
	env.profiles.On("SetActive", mock.Anything, testPlayer, mock.Anything).Return(nil).Maybe()

	env.svc = NewService(Dependencies{
		Boards:    &fixedBoards{layout: layout},
		Settler:   env.settler,
		History:   env.history,
		Profiles:  env.profiles,
		Jobs:      env.jobs,
		Publisher: env.pub,
		Dice:      newDice(dice...).Next,
		Clock:     func() time.Time { return testTime },
	})
	return env
}

func settledResult(tx string) domain.SettlementResult {
	return domain.SettlementResult{Outcome: domain.SettlementSettled, TxID: tx}
}

func TestService_FiveEmptyRollsStayActive(t *testing.T) {
	env := newTestEnv(t, map[int]domain.BoardCell{7: {Kind: domain.CellHazard}},
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)

	for i := 0; i < domain.MaxRolls; i++ {
		res, err := env.svc.Roll(ctx, testPlayer)
		require.NoError(t, err)
		assert.False(t, res.Lost)
		assert.Equal(t, domain.CellEmpty, res.Landing.Kind)
	}

	r, err := env.svc.Current(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundActive, r.Status)
	assert.Equal(t, domain.MaxRolls, r.Rolls)
	assert.True(t, r.Profit.IsZero())
	assert.True(t, r.Multiplier.Equal(decimal.NewFromInt(1)))

	_, err = env.svc.Roll(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrRollLimitReached)
	env.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_BonusThenCashout(t *testing.T) {
	tests := []struct {
		name       string
		bonus      float64
		wantBP     uint64
		wantProfit decimal.Decimal
	}{
		{"double", 2.0, 200, decimal.NewFromInt(4)},
		{"one and a half", 1.5, 150, decimal.NewFromInt(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, map[int]domain.BoardCell{3: {Kind: domain.CellBonus, Bonus: tt.bonus}}, 1, 2)
			ctx := context.Background()

			var didSettle bool
			env.settler.On("Settle", mock.Anything, mock.MatchedBy(func(req domain.SettlementRequest) bool {
				return req.Won && req.MultiplierBasisPoints == tt.wantBP && req.PlayerLabel == "Viper" &&
					req.Stake.Equal(decimal.NewFromInt(2))
			})).Run(func(mock.Arguments) { didSettle = true }).Return(settledResult("0xdigest")).Once()
			env.history.On("Append", mock.Anything, testPlayer, mock.MatchedBy(func(e domain.HistoryEntry) bool {
				return e.Result == domain.HistoryWin && e.Profit.Equal(tt.wantProfit) && e.Difficulty == domain.DifficultyEasy
			})).Run(func(mock.Arguments) {
				assert.True(t, didSettle, "history must follow a successful settlement")
			}).Return(nil).Once()

			_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(2), domain.DifficultyEasy)
			require.NoError(t, err)

			roll, err := env.svc.Roll(ctx, testPlayer)
			require.NoError(t, err)
			assert.Equal(t, domain.CellBonus, roll.Landing.Kind)
			assert.True(t, roll.Round.Profit.Equal(tt.wantProfit))

			res, err := env.svc.Cashout(ctx, testPlayer)
			require.NoError(t, err)
			assert.Equal(t, domain.SettlementSettled, res.Outcome)
			assert.Equal(t, "0xdigest", res.TxID)
			assert.Equal(t, domain.RoundSettled, res.Round.Status)

			env.settler.AssertExpectations(t)
			env.history.AssertExpectations(t)
			env.profiles.AssertCalled(t, "SetActive", mock.Anything, testPlayer, false)
			assert.Len(t, env.pub.ofType(event.RoundCashedOut), 1)
		})
	}
}

func TestService_HazardLoses(t *testing.T) {
	env := newTestEnv(t, map[int]domain.BoardCell{
		3: {Kind: domain.CellBonus, Bonus: 2},
		7: {Kind: domain.CellHazard},
	}, 1, 2, 2, 2)
	ctx := context.Background()

	env.history.On("Append", mock.Anything, testPlayer, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Result == domain.HistoryLose && e.Profit.IsZero() && e.Multiplier.Equal(decimal.NewFromInt(2))
	})).Return(nil).Once()
	env.settler.On("Settle", mock.Anything, mock.MatchedBy(func(req domain.SettlementRequest) bool {
		return !req.Won && req.MultiplierBasisPoints == 0
	})).Return(settledResult("0xloss")).Once()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(2), domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)

	res, err := env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)
	assert.True(t, res.Lost)
	assert.Equal(t, domain.CellHazard, res.Landing.Kind)
	assert.Equal(t, domain.RoundLost, res.Round.Status)
	assert.True(t, res.Round.Profit.IsZero())
	assert.Empty(t, res.Round.Bonuses)

	env.history.AssertExpectations(t)
	env.settler.AssertExpectations(t)
	require.Len(t, env.jobs.jobs, 1)
	assert.NoError(t, env.jobs.errs[0])
	assert.Equal(t, JobNameLossSettlement, env.jobs.jobs[0].(*lossSettlementJob).Name())
	env.profiles.AssertCalled(t, "SetActive", mock.Anything, testPlayer, false)
	assert.Len(t, env.pub.ofType(event.RoundLost), 1)

	_, err = env.svc.Roll(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrRoundLost)
	_, err = env.svc.Cashout(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrRoundLost)

	// a lost round can be replaced
	_, err = env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	assert.NoError(t, err)
}

func TestService_LossSettlementFailureDoesNotChangeRound(t *testing.T) {
	env := newTestEnv(t, map[int]domain.BoardCell{7: {Kind: domain.CellHazard}}, 3, 4)
	ctx := context.Background()

	env.history.On("Append", mock.Anything, testPlayer, mock.Anything).Return(nil)
	env.settler.On("Settle", mock.Anything, mock.Anything).
		Return(domain.SettlementResult{Outcome: domain.SettlementFailed, Err: errors.New("rpc down")}).Once()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	res, err := env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)
	assert.True(t, res.Lost)

	require.Len(t, env.jobs.errs, 1)
	assert.Error(t, env.jobs.errs[0])

	r, err := env.svc.Current(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundLost, r.Status)
}

func TestService_LossSettlementOutlivesJobTimeout(t *testing.T) {
	pool := worker.NewPool(1, 4).WithJobTimeout(50 * time.Millisecond)
	pool.Start()
	defer pool.Stop()

	settler := new(MockSettler)
	settler.On("Configured").Return(true)
	seen := make(chan error, 1)
	settler.On("Settle", mock.Anything, mock.MatchedBy(func(req domain.SettlementRequest) bool { return !req.Won })).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			select {
			case <-ctx.Done():
			case <-time.After(200 * time.Millisecond):
			}
			seen <- ctx.Err()
		}).
		Return(settledResult("0xslowloss")).Once()
	history := new(MockHistory)
	history.On("Append", mock.Anything, testPlayer, mock.Anything).Return(nil)

	svc := NewService(Dependencies{
		Boards:   &fixedBoards{layout: map[int]domain.BoardCell{7: {Kind: domain.CellHazard}}},
		Settler:  settler,
		History:  history,
		Profiles: &markerProfiles{},
		Jobs:     pool,
		Dice:     newDice(3, 4).Next,
	})
	ctx := context.Background()

	_, err := svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	res, err := svc.Roll(ctx, testPlayer)
	require.NoError(t, err)
	require.True(t, res.Lost)

	select {
	case err := <-seen:
		assert.NoError(t, err, "loss settlement must not be cancelled")
	case <-time.After(2 * time.Second):
		t.Fatal("loss settlement never ran")
	}
}

func TestLossSettlementJob_IgnoresCallerDeadline(t *testing.T) {
	settler := new(MockSettler)
	settler.On("Settle", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(settledResult("0xloss")).Once()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	job := &lossSettlementJob{settler: settler, request: domain.SettlementRequest{Player: testPlayer, RoundID: "r1"}}
	assert.NoError(t, job.Process(ctx))
	settler.AssertExpectations(t)
}

func TestService_NoPoolRunsLossSettlementInline(t *testing.T) {
	settler := new(MockSettler)
	settler.On("Configured").Return(true)
	settler.On("Settle", mock.Anything, mock.Anything).
		Return(domain.SettlementResult{Outcome: domain.SettlementFailed, Err: errors.New("rpc down")}).Once()
	history := new(MockHistory)
	history.On("Append", mock.Anything, testPlayer, mock.Anything).Return(nil)

	svc := NewService(Dependencies{
		Boards:   &fixedBoards{layout: map[int]domain.BoardCell{7: {Kind: domain.CellHazard}}},
		Settler:  settler,
		History:  history,
		Profiles: &markerProfiles{},
		Dice:     newDice(3, 4).Next,
	})
	ctx := context.Background()

	_, err := svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	res, err := svc.Roll(ctx, testPlayer)
	require.NoError(t, err)
	assert.True(t, res.Lost)

	// settled before Roll returned
	settler.AssertExpectations(t)
}

func TestService_StartWaitsForFinishedRoundBookkeeping(t *testing.T) {
	tests := []struct {
		name   string
		dice   []int
		result domain.HistoryResult
		finish func(svc Service) error
	}{
		{
			name:   "loss",
			dice:   []int{3, 4},
			result: domain.HistoryLose,
			finish: func(svc Service) error {
				_, err := svc.Roll(context.Background(), testPlayer)
				return err
			},
		},
		{
			name:   "cashout",
			dice:   []int{1, 1},
			result: domain.HistoryWin,
			finish: func(svc Service) error {
				if _, err := svc.Roll(context.Background(), testPlayer); err != nil {
					return err
				}
				_, err := svc.Cashout(context.Background(), testPlayer)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settler := new(MockSettler)
			settler.On("Configured").Return(true)
			settler.On("Settle", mock.Anything, mock.Anything).Return(settledResult("0xtx"))

			entered := make(chan struct{})
			release := make(chan struct{})
			history := new(MockHistory)
			history.On("Append", mock.Anything, testPlayer, mock.MatchedBy(func(e domain.HistoryEntry) bool {
				return e.Result == tt.result
			})).Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).Return(nil).Once()

			profiles := &markerProfiles{}
			svc := NewService(Dependencies{
				Boards:   &fixedBoards{layout: map[int]domain.BoardCell{7: {Kind: domain.CellHazard}}},
				Settler:  settler,
				History:  history,
				Profiles: profiles,
				Jobs:     &inlineJobs{},
				Dice:     newDice(tt.dice...).Next,
			})
			ctx := context.Background()

			_, err := svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
			require.NoError(t, err)

			done := make(chan error, 1)
			go func() { done <- tt.finish(svc) }()
			<-entered

			_, err = svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
			assert.ErrorIs(t, err, domain.ErrRoundInProgress)

			close(release)
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatal("round did not finish")
			}
			assert.False(t, profiles.isActive(testPlayer))

			next, err := svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
			require.NoError(t, err)
			assert.Equal(t, domain.RoundActive, next.Status)
			assert.True(t, profiles.isActive(testPlayer))
			history.AssertExpectations(t)
		})
	}
}

func TestService_DeclinedCashoutRestoresActive(t *testing.T) {
	env := newTestEnv(t, map[int]domain.BoardCell{3: {Kind: domain.CellBonus, Bonus: 2}}, 1, 2)
	ctx := context.Background()

	env.settler.On("Settle", mock.Anything, mock.Anything).
		Return(domain.SettlementResult{Outcome: domain.SettlementDeclined, Err: domain.ErrUserDeclined}).Once()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(2), domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)

	res, err := env.svc.Cashout(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementDeclined, res.Outcome)
	assert.Equal(t, domain.ErrMsgUserDeclined, res.Message)
	assert.Equal(t, domain.RoundActive, res.Round.Status)
	assert.True(t, res.Round.Profit.Equal(decimal.NewFromInt(4)))
	env.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, env.pub.ofType(event.SettlementDeclined), 1)

	env.settler.On("Settle", mock.Anything, mock.Anything).Return(settledResult("0xsecond")).Once()
	env.history.On("Append", mock.Anything, testPlayer, mock.Anything).Return(nil).Once()

	res, err = env.svc.Cashout(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementSettled, res.Outcome)
	env.history.AssertExpectations(t)
}

func TestService_FailedCashoutCanRetry(t *testing.T) {
	env := newTestEnv(t, nil, 1, 1)
	ctx := context.Background()

	env.settler.On("Settle", mock.Anything, mock.Anything).
		Return(domain.SettlementResult{Outcome: domain.SettlementFailed, Err: errors.New("insufficient gas")}).Once()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)

	res, err := env.svc.Cashout(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementFailed, res.Outcome)
	assert.Equal(t, "insufficient gas", res.Message)
	assert.Equal(t, domain.RoundAwaitingSettlement, res.Round.Status)
	assert.Equal(t, "insufficient gas", res.Round.SettlementError)

	_, err = env.svc.Roll(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrSettlementInProgress)

	env.settler.On("Settle", mock.Anything, mock.Anything).Return(settledResult("0xretry")).Once()
	env.history.On("Append", mock.Anything, testPlayer, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Result == domain.HistoryWin && e.Profit.IsZero()
	})).Return(nil).Once()

	res, err = env.svc.Cashout(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementSettled, res.Outcome)
	assert.Equal(t, "0xretry", res.Round.TxID)
	env.history.AssertExpectations(t)
}

func TestService_NotConfigured(t *testing.T) {
	settler := new(MockSettler)
	settler.On("Configured").Return(false)
	svc := NewService(Dependencies{Boards: &fixedBoards{}, Settler: settler})
	ctx := context.Background()

	_, err := svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	_, err = svc.Cashout(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
}

func TestService_StartValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, "", decimal.NewFromInt(1), domain.DifficultyEasy)
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)
	_, err = env.svc.Start(ctx, testPlayer, decimal.Zero, domain.DifficultyEasy)
	assert.ErrorIs(t, err, domain.ErrInvalidStake)
	_, err = env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), "impossible")
	assert.ErrorIs(t, err, domain.ErrUnknownDifficulty)

	_, err = env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyHard)
	require.NoError(t, err)
	_, err = env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyHard)
	assert.ErrorIs(t, err, domain.ErrRoundInProgress)
}

func TestService_BoardFailure(t *testing.T) {
	settler := new(MockSettler)
	settler.On("Configured").Return(true)
	boom := errors.New("entropy unavailable")
	svc := NewService(Dependencies{Boards: &fixedBoards{err: boom}, Settler: settler})

	_, err := svc.Start(context.Background(), testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	assert.ErrorIs(t, err, boom)

	r, err := svc.Current(context.Background(), testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundIdle, r.Status)
}

func TestService_UnknownPlayer(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.Current(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNoActiveRound)
	_, err = env.svc.Roll(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNoActiveRound)
	_, err = env.svc.Cashout(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNoActiveRound)
	_, err = env.svc.Roll(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)
}

func TestService_CashoutBeforeRoll(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = env.svc.Cashout(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrCashoutNoRolls)
	env.settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
}

func TestService_StepEvents(t *testing.T) {
	env := newTestEnv(t, nil, 2, 3)
	ctx := context.Background()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	res, err := env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 3}, res.Dice)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.Steps)

	steps := env.pub.ofType(event.RoundStep)
	require.Len(t, steps, 5)
	for i, evt := range steps {
		p := evt.Payload.(event.StepPayloadV1)
		assert.Equal(t, i+1, p.Step)
		assert.Equal(t, 5, p.Of)
		assert.Equal(t, i+1, p.Index)
		assert.Equal(t, testPlayer, evt.Player())
	}

	types := env.pub.types()
	assert.Equal(t, event.RoundStarted, types[0])
	assert.Equal(t, event.RoundLanded, types[len(types)-1])
}

func TestService_DiceFailureLeavesRoundUntouched(t *testing.T) {
	tests := []struct {
		name    string
		dice    []int
		wantErr error
	}{
		{"source error", nil, errDiceExhausted},
		{"out of range", []int{7, 1}, domain.ErrInvalidDice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, tt.dice...)
			ctx := context.Background()

			_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
			require.NoError(t, err)

			_, err = env.svc.Roll(ctx, testPlayer)
			assert.ErrorIs(t, err, tt.wantErr)

			r, err := env.svc.Current(ctx, testPlayer)
			require.NoError(t, err)
			assert.False(t, r.Rolling)
			assert.Equal(t, 0, r.Rolls)
			assert.Equal(t, 0, r.Position)
		})
	}
}

func TestService_RejectsRollWhileMoving(t *testing.T) {
	settler := new(MockSettler)
	settler.On("Configured").Return(true)
	profiles := new(MockProfiles)
	profiles.On("SetActive", mock.Anything, testPlayer, mock.Anything).Return(nil)
	pub := &recordingPublisher{}
	svc := NewService(Dependencies{
		Boards:    &fixedBoards{},
		Settler:   settler,
		History:   new(MockHistory),
		Profiles:  profiles,
		Publisher: pub,
		Dice:      newDice(6, 6).Next,
		StepDelay: 20 * time.Millisecond,
	})
	ctx := context.Background()

	_, err := svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var rollErr error
	go func() {
		defer wg.Done()
		_, rollErr = svc.Roll(ctx, testPlayer)
	}()

	require.Eventually(t, func() bool { return len(pub.ofType(event.RoundStep)) > 0 }, time.Second, time.Millisecond)

	_, err = svc.Roll(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrRollInProgress)
	_, err = svc.Cashout(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrRollInProgress)

	cur, err := svc.Current(ctx, testPlayer)
	require.NoError(t, err)
	assert.True(t, cur.Rolling)

	wg.Wait()
	require.NoError(t, rollErr)
	cur, err = svc.Current(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, 12, cur.Position)
	assert.False(t, cur.Rolling)
}

func TestService_RejectsCallsWhileSettling(t *testing.T) {
	env := newTestEnv(t, nil, 1, 1)
	ctx := context.Background()

	release := make(chan struct{})
	entered := make(chan struct{})
	env.settler.On("Settle", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return(settledResult("0xslow")).Once()
	env.history.On("Append", mock.Anything, testPlayer, mock.Anything).Return(nil).Once()

	_, err := env.svc.Start(ctx, testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = env.svc.Roll(ctx, testPlayer)
	require.NoError(t, err)

	done := make(chan domain.CashoutResult, 1)
	go func() {
		res, _ := env.svc.Cashout(ctx, testPlayer)
		done <- res
	}()
	<-entered

	_, err = env.svc.Roll(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrSettlementInProgress)
	_, err = env.svc.Cashout(ctx, testPlayer)
	assert.ErrorIs(t, err, domain.ErrSettlementInProgress)

	close(release)
	select {
	case res := <-done:
		assert.Equal(t, domain.SettlementSettled, res.Outcome)
	case <-time.After(time.Second):
		t.Fatal("cashout did not finish")
	}
}

func TestService_CancelledCallerStillSettles(t *testing.T) {
	env := newTestEnv(t, nil, 1, 1)

	env.settler.On("Settle", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(settledResult("0xdetached")).Once()
	env.history.On("Append", mock.Anything, testPlayer, mock.Anything).Return(nil).Once()

	_, err := env.svc.Start(context.Background(), testPlayer, decimal.NewFromInt(1), domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = env.svc.Roll(context.Background(), testPlayer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := env.svc.Cashout(ctx, testPlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementSettled, res.Outcome)
	env.settler.AssertExpectations(t)
}

func TestService_PreviewAndDifficulties(t *testing.T) {
	env := newTestEnv(t, map[int]domain.BoardCell{4: {Kind: domain.CellHazard}})
	ctx := context.Background()

	p, err := env.svc.Preview(ctx, domain.DifficultyMedium)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyMedium, p.Difficulty)
	assert.Len(t, p.Path, domain.PathLength)

	_, err = env.svc.Preview(ctx, "bogus")
	assert.ErrorIs(t, err, domain.ErrUnknownDifficulty)

	assert.Len(t, env.svc.Difficulties(), len(domain.Difficulties))
}
