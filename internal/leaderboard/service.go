// Package leaderboard ranks players by total winnings over recent settlements.
package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/multiplier"
)

// EventSource returns recorded settlement events, newest first
type EventSource interface {
	QueryEvents(ctx context.Context, eventType string, limit int) ([]domain.GameResultEvent, error)
}

// Service returns the current leaderboard
type Service interface {
	Top(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type service struct {
	source    EventSource
	eventType string
	cache     *expirable.LRU[string, []domain.LeaderboardEntry]
}

// NewService creates a leaderboard over events of eventType. An empty eventType
// means no contract is deployed and the board is always empty.
func NewService(source EventSource, eventType string) Service {
	return &service{
		source:    source,
		eventType: eventType,
		cache:     expirable.NewLRU[string, []domain.LeaderboardEntry](1, nil, CacheTTL),
	}
}

func (s *service) Top(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if s.eventType == "" {
		return []domain.LeaderboardEntry{}, nil
	}
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	events, err := s.source.QueryEvents(ctx, s.eventType, EventWindow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryFailed, err)
	}

	top := Rank(events, TopN)
	s.cache.Add(cacheKey, top)
	logger.FromContext(ctx).Debug(LogMsgRebuilt, "events", len(events), "players", len(top))
	return top, nil
}

// Rank sums winning payouts per player and returns the n best. Each player keeps
// the nickname of their first event; ties keep first-seen order.
func Rank(events []domain.GameResultEvent, n int) []domain.LeaderboardEntry {
	byPlayer := make(map[string]*domain.LeaderboardEntry)
	order := make([]*domain.LeaderboardEntry, 0)

	for _, ev := range events {
		if !ev.Won || ev.PayoutMinor == 0 {
			continue
		}
		payout := multiplier.FromMinor(ev.PayoutMinor)
		if entry, ok := byPlayer[ev.Player]; ok {
			entry.TotalPayout = entry.TotalPayout.Add(payout)
			entry.Wins++
			continue
		}
		name := ev.Nickname
		if name == "" {
			name = domain.DefaultLeaderboardName
		}
		entry := &domain.LeaderboardEntry{
			Player:      ev.Player,
			Nickname:    name,
			TotalPayout: payout,
			Wins:        1,
		}
		byPlayer[ev.Player] = entry
		order = append(order, entry)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].TotalPayout.GreaterThan(order[j].TotalPayout)
	})
	if len(order) > n {
		order = order[:n]
	}

	out := make([]domain.LeaderboardEntry, len(order))
	for i, e := range order {
		out[i] = *e
		out[i].Rank = i + 1
		out[i].TotalPayout = e.TotalPayout.Round(DisplayDecimals)
	}
	return out
}
