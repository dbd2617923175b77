package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/store"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const advisoryLockSQL = "SELECT pg_advisory_xact_lock(hashtext($1))"

// StateStore is a store.Store backed by the player_state table
type StateStore struct {
	pool      *pgxpool.Pool
	txManager trm.Manager
	getter    *trmpgx.CtxGetter
}

var _ store.Store = (*StateStore)(nil)

// NewStateStore creates a StateStore over an already migrated pool
func NewStateStore(pool *pgxpool.Pool) (*StateStore, error) {
	m, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		return nil, err
	}
	return &StateStore{
		pool:      pool,
		txManager: m,
		getter:    trmpgx.DefaultCtxGetter,
	}, nil
}

// conn returns the transaction bound to ctx, or the pool outside one
func (s *StateStore) conn(ctx context.Context) trmpgx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.pool)
}

func (s *StateStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.get(ctx, key, false)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetState, err)
	}
	return value, nil
}

func (s *StateStore) get(ctx context.Context, key string, forUpdate bool) ([]byte, error) {
	query := psql.Select(colValue).
		From(tablePlayerState).
		Where(sq.Eq{colKey: key})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	var value []byte
	if err := s.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *StateStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.set(ctx, key, value); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetState, err)
	}
	return nil
}

func (s *StateStore) set(ctx context.Context, key string, value []byte) error {
	sqlStr, args, err := psql.Insert(tablePlayerState).
		Columns(colKey, colValue, colUpdatedAt).
		Values(key, string(value), sq.Expr("NOW()")).
		Suffix("ON CONFLICT (" + colKey + ") DO UPDATE SET " +
			colValue + " = EXCLUDED." + colValue + ", " +
			colUpdatedAt + " = EXCLUDED." + colUpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	_, err = s.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

func (s *StateStore) Delete(ctx context.Context, key string) error {
	sqlStr, args, err := psql.Delete(tablePlayerState).
		Where(sq.Eq{colKey: key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBuildQuery, err)
	}

	if _, err := s.conn(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDelete, err)
	}
	return nil
}

// Update runs inside a transaction holding an advisory lock on the key, so
// concurrent updates of the same key serialise even before its row exists.
func (s *StateStore) Update(ctx context.Context, key string, fn store.UpdateFunc) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.conn(txCtx).Exec(txCtx, advisoryLockSQL, key); err != nil {
			return err
		}

		current, err := s.get(txCtx, key, true)
		found := err == nil
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return s.set(txCtx, key, next)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdate, err)
	}
	return nil
}
