package settlement

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

// MockSigner implements Signer for testing
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) SignAndSubmit(ctx context.Context, call domain.SettlementCall, player string) (string, error) {
	args := m.Called(ctx, call, player)
	return args.String(0), args.Error(1)
}

// MockRefresher implements BalanceRefresher for testing
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context, player string) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}
