package store

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/SnakeCrawl_Go/internal/concurrency"
	"github.com/osse101/SnakeCrawl_Go/internal/domain"
)

// Memory is an in-process Store. Values are copied on the way in and out.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	locks *concurrency.LockManager
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		data:  make(map[string][]byte),
		locks: concurrency.NewLockManager(),
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	v, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(v), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = clone(value)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Update serialises writers of the same key; other keys proceed in parallel
func (m *Memory) Update(ctx context.Context, key string, fn UpdateFunc) error {
	unlock := m.locks.Lock(key)
	defer unlock()

	cur, err := m.Get(ctx, key)
	found := err == nil
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	next, err := fn(cur, found)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, next)
}

// Len returns the number of stored keys
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
