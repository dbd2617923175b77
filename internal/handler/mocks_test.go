package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/SnakeCrawl_Go/internal/board"
	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

type MockRoundService struct {
	mock.Mock
}

func (m *MockRoundService) Start(ctx context.Context, player string, stake decimal.Decimal, d domain.Difficulty) (domain.Round, error) {
	args := m.Called(ctx, player, stake, d)
	return args.Get(0).(domain.Round), args.Error(1)
}

func (m *MockRoundService) Roll(ctx context.Context, player string) (domain.RollResult, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(domain.RollResult), args.Error(1)
}

func (m *MockRoundService) Cashout(ctx context.Context, player string) (domain.CashoutResult, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(domain.CashoutResult), args.Error(1)
}

func (m *MockRoundService) Current(ctx context.Context, player string) (domain.Round, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(domain.Round), args.Error(1)
}

func (m *MockRoundService) Preview(ctx context.Context, d domain.Difficulty) (*domain.Preview, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preview), args.Error(1)
}

func (m *MockRoundService) Difficulties() []board.TierInfo {
	args := m.Called()
	return args.Get(0).([]board.TierInfo)
}

type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) Nickname(ctx context.Context, player string) (string, error) {
	args := m.Called(ctx, player)
	return args.String(0), args.Error(1)
}

func (m *MockPlayerService) SetNickname(ctx context.Context, player, nickname string) (string, error) {
	args := m.Called(ctx, player, nickname)
	return args.String(0), args.Error(1)
}

func (m *MockPlayerService) Label(ctx context.Context, player string) string {
	return m.Called(ctx, player).String(0)
}

func (m *MockPlayerService) SetActive(ctx context.Context, player string, active bool) error {
	return m.Called(ctx, player, active).Error(0)
}

func (m *MockPlayerService) IsActive(ctx context.Context, player string) (bool, error) {
	args := m.Called(ctx, player)
	return args.Bool(0), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Append(ctx context.Context, player string, entry domain.HistoryEntry) error {
	return m.Called(ctx, player, entry).Error(0)
}

func (m *MockHistoryService) List(ctx context.Context, player string, page, pageSize int) (domain.HistoryPage, error) {
	args := m.Called(ctx, player, page, pageSize)
	return args.Get(0).(domain.HistoryPage), args.Error(1)
}

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Get(ctx context.Context, player string) domain.Balance {
	return m.Called(ctx, player).Get(0).(domain.Balance)
}

func (m *MockBalanceService) Refresh(ctx context.Context, player string) error {
	return m.Called(ctx, player).Error(0)
}

func (m *MockBalanceService) Track(player string) {
	m.Called(player)
}

func (m *MockBalanceService) RefreshJob() worker.Job {
	return m.Called().Get(0).(worker.Job)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
