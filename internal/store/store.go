// Package store defines the key-value persistence used for player state.
//
// Values are JSON documents. Backends: an in-process map for local play and
// tests, and PostgreSQL (see internal/database/postgres).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

// UpdateFunc receives the current value (found=false when the key is absent) and
// returns the value to write. Returning an error aborts the update.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is a string-keyed document store
type Store interface {
	// Get returns domain.ErrNotFound when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update performs an atomic read-modify-write of one key
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// GetJSON decodes the value stored at key into T.
// A missing key yields the zero value and found=false.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, false, nil
		}
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("%s %q: %w", ErrMsgDecodeFailed, key, err)
	}
	return out, true, nil
}

// SetJSON encodes v and stores it at key
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgEncodeFailed, key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateJSON is Update with the value decoded into T before fn and encoded after
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(current T, found bool) (T, error)) error {
	return s.Update(ctx, key, func(raw []byte, found bool) ([]byte, error) {
		var cur T
		if found {
			if err := json.Unmarshal(raw, &cur); err != nil {
				return nil, fmt.Errorf("%s %q: %w", ErrMsgDecodeFailed, key, err)
			}
		}
		next, err := fn(cur, found)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}
