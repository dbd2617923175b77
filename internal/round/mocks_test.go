package round

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

// MockSettler is a mock implementation of Settler
type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) Settle(ctx context.Context, req domain.SettlementRequest) domain.SettlementResult {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SettlementResult)
}

func (m *MockSettler) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockHistory is a mock implementation of HistoryRecorder
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) Append(ctx context.Context, player string, entry domain.HistoryEntry) error {
	args := m.Called(ctx, player, entry)
	return args.Error(0)
}

// MockProfiles is a mock implementation of Profiles
type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) Label(ctx context.Context, player string) string {
	args := m.Called(ctx, player)
	return args.String(0)
}

func (m *MockProfiles) SetActive(ctx context.Context, player string, active bool) error {
	args := m.Called(ctx, player, active)
	return args.Error(0)
}
