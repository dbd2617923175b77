// Package player stores per-player profile data: nickname and the active-round marker.
package player

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
	"github.com/osse101/SnakeCrawl_Go/internal/store"
)

// Service reads and writes player profile state
type Service interface {
	// Nickname returns the stored nickname, or "" when none is set
	Nickname(ctx context.Context, player string) (string, error)
	SetNickname(ctx context.Context, player, nickname string) (string, error)

	// Label is the name attached to settlements: the nickname or domain.DefaultPlayerLabel
	Label(ctx context.Context, player string) string

	SetActive(ctx context.Context, player string, active bool) error
	IsActive(ctx context.Context, player string) (bool, error)
}

type service struct {
	store store.Store
}

// NewService creates a player profile service over s
func NewService(s store.Store) Service {
	return &service{store: s}
}

// NormalizeNickname trims surrounding whitespace and enforces the length limit
func NormalizeNickname(nickname string) (string, error) {
	n := strings.TrimSpace(nickname)
	if l := utf8.RuneCountInString(n); l == 0 || l > domain.MaxNicknameLength {
		return "", domain.ErrInvalidNickname
	}
	return n, nil
}

func (s *service) Nickname(ctx context.Context, player string) (string, error) {
	if player == "" {
		return "", domain.ErrMissingIdentity
	}
	name, _, err := store.GetJSON[string](ctx, s.store, store.NicknameKey(player))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextGetNickname, err)
	}
	return name, nil
}

func (s *service) SetNickname(ctx context.Context, player, nickname string) (string, error) {
	if player == "" {
		return "", domain.ErrMissingIdentity
	}
	name, err := NormalizeNickname(nickname)
	if err != nil {
		return "", err
	}
	if err := store.SetJSON(ctx, s.store, store.NicknameKey(player), name); err != nil {
		return "", fmt.Errorf("%s: %w", ErrContextSetNickname, err)
	}
	logger.FromContext(ctx).Info(LogMsgNicknameSet, "player", player)
	return name, nil
}

func (s *service) Label(ctx context.Context, player string) string {
	name, err := s.Nickname(ctx, player)
	if err != nil || name == "" {
		return domain.DefaultPlayerLabel
	}
	return name
}

func (s *service) SetActive(ctx context.Context, player string, active bool) error {
	key := store.ActiveGameKey(player)
	var err error
	if active {
		err = store.SetJSON(ctx, s.store, key, true)
	} else {
		err = s.store.Delete(ctx, key)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextActiveMarker, err)
	}
	return nil
}

func (s *service) IsActive(ctx context.Context, player string) (bool, error) {
	active, _, err := store.GetJSON[bool](ctx, s.store, store.ActiveGameKey(player))
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextActiveMarker, err)
	}
	return active, nil
}
