// Package history keeps each player's list of finished rounds.
package history

import (
	"context"
	"fmt"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/store"
)

// Service records and pages through finished rounds
type Service interface {
	// Append adds entry to the player's history
	Append(ctx context.Context, player string, entry domain.HistoryEntry) error

	// List returns one 1-based page, newest entry first.
	// pageSize <= 0 selects DefaultPageSize.
	List(ctx context.Context, player string, page, pageSize int) (domain.HistoryPage, error)
}

type service struct {
	store store.Store
}

// NewService creates a history service over s
func NewService(s store.Store) Service {
	return &service{store: s}
}

func (s *service) Append(ctx context.Context, player string, entry domain.HistoryEntry) error {
	if player == "" {
		return domain.ErrMissingIdentity
	}

	err := store.UpdateJSON(ctx, s.store, store.HistoryKey(player), func(entries []domain.HistoryEntry, _ bool) ([]domain.HistoryEntry, error) {
		return append(entries, entry), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppendFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgEntryAppended, "player", player, "result", entry.Result)
	return nil
}

func (s *service) List(ctx context.Context, player string, page, pageSize int) (domain.HistoryPage, error) {
	if player == "" {
		return domain.HistoryPage{}, domain.ErrMissingIdentity
	}
	if page < 1 {
		return domain.HistoryPage{}, domain.ErrInvalidPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	entries, _, err := store.GetJSON[[]domain.HistoryEntry](ctx, s.store, store.HistoryKey(player))
	if err != nil {
		return domain.HistoryPage{}, fmt.Errorf("%s: %w", ErrContextListFailed, err)
	}

	total := len(entries)
	result := domain.HistoryPage{
		Entries:    []domain.HistoryEntry{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	// entries are stored oldest first
	start := (page - 1) * pageSize
	for i := start; i < start+pageSize && i < total; i++ {
		result.Entries = append(result.Entries, entries[total-1-i])
	}
	return result, nil
}
