// Package balance keeps a best-effort view of player ledger balances.
package balance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/multiplier"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

// Reader reads an owner's balance in minor units
type Reader interface {
	Balance(ctx context.Context, owner string) (uint64, error)
}

// Service caches balances and refreshes the ones being tracked
type Service interface {
	// Get returns the cached balance, reading through when it is older than
	// the freshness window. Read failures return the last known value marked stale.
	Get(ctx context.Context, player string) domain.Balance

	// Refresh reads the ledger and updates the cache
	Refresh(ctx context.Context, player string) error

	// Track registers player for periodic refresh
	Track(player string)

	// RefreshJob returns the job that refreshes every tracked player
	RefreshJob() worker.Job
}

// Options tunes a Service; zero values take the package defaults
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Freshness time.Duration
	// TrackLimit caps the polled set; TrackIdle drops players not seen for that long
	TrackLimit int
	TrackIdle  time.Duration
	Publisher  event.Publisher
	Clock     func() time.Time
}

type service struct {
	reader    Reader
	cache     *expirable.LRU[string, domain.Balance]
	freshness time.Duration
	publisher event.Publisher
	clock     func() time.Time
	tracked   *expirable.LRU[string, struct{}]
}

// NewService creates a balance service over reader
func NewService(reader Reader, opts Options) Service {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Freshness <= 0 {
		opts.Freshness = DefaultFreshness
	}
	if opts.TrackLimit <= 0 {
		opts.TrackLimit = DefaultTrackLimit
	}
	if opts.TrackIdle <= 0 {
		opts.TrackIdle = DefaultTrackIdle
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &service{
		reader:    reader,
		cache:     expirable.NewLRU[string, domain.Balance](opts.CacheSize, nil, opts.CacheTTL),
		freshness: opts.Freshness,
		publisher: opts.Publisher,
		clock:     opts.Clock,
		tracked:   expirable.NewLRU[string, struct{}](opts.TrackLimit, nil, opts.TrackIdle),
	}
}

func (s *service) Get(ctx context.Context, player string) domain.Balance {
	cached, ok := s.cache.Get(player)
	if ok && s.clock().Sub(cached.UpdatedAt) < s.freshness {
		return cached
	}

	if err := s.Refresh(ctx, player); err != nil {
		logger.FromContext(ctx).Warn(LogMsgReadDegraded, "error", err)
		if !ok {
			cached = domain.Balance{Player: player, Display: FormatMinor(0)}
		}
		cached.Stale = true
		return cached
	}

	fresh, _ := s.cache.Get(player)
	return fresh
}

func (s *service) Refresh(ctx context.Context, player string) error {
	minor, err := s.reader.Balance(ctx, player)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextReadFailed, err)
	}

	prev, had := s.cache.Get(player)
	b := domain.Balance{
		Player:    player,
		Minor:     minor,
		Display:   FormatMinor(minor),
		UpdatedAt: s.clock(),
	}
	s.cache.Add(player, b)

	if had && prev.Minor == minor {
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgRefreshed, "player", player, "minor", minor)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.NewBalanceEvent(b)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", err)
		}
	}
	return nil
}

func (s *service) Track(player string) {
	if player == "" {
		return
	}
	// re-adding renews the idle deadline
	if !s.tracked.Contains(player) {
		logger.Debug(LogMsgTracked, "player", player)
	}
	s.tracked.Add(player, struct{}{})
}

func (s *service) trackedPlayers() []string {
	out := s.tracked.Keys()
	sort.Strings(out)
	return out
}

func (s *service) RefreshJob() worker.Job {
	return &refreshJob{svc: s}
}

// refreshJob refreshes every tracked balance once
type refreshJob struct {
	svc *service
}

func (j *refreshJob) Name() string {
	return JobNameRefresh
}

func (j *refreshJob) Process(ctx context.Context) error {
	var errs []error
	for _, p := range j.svc.trackedPlayers() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := j.svc.Refresh(ctx, p); err != nil {
			logger.FromContext(ctx).Warn(LogMsgTrackedRefresh, "player", p, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FormatMinor renders minor units as whole coins with three decimals
func FormatMinor(minor uint64) string {
	return multiplier.FromMinor(minor).StringFixed(DisplayDecimals)
}
