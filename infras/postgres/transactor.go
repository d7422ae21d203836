package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transactor.go -destination=./mocks/transactor_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const otelScopeName = "postgres"

// TxFunc receives the scoped context and the open transaction.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Transactor interface {
	WithTransaction(ctx context.Context, fn TxFunc) error
	// Lock takes the advisory locks for keys in sorted order so that two
	// transactions locking the same set never deadlock.
	Lock(ctx context.Context, tx *sqlx.Tx, keys ...string) error
}

type transactorImpl struct {
	db   *Connection
	otel otel.Otel
}

func NewTransactor(db *Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

// WithTransaction commits when fn returns nil and rolls back on error or panic.
func (t *transactorImpl) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".WithTransaction")
	defer scope.End()

	tx, err := t.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			rollback(tx)
			panic(recovered)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		scope.TraceError(err)
		rollback(tx)

		return err
	}

	if err = tx.Commit(); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (t *transactorImpl) Lock(ctx context.Context, tx *sqlx.Tx, keys ...string) error {
	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".Lock")
	defer scope.End()

	sorted := slices.Compact(slices.Sorted(slices.Values(keys)))

	for _, key := range sorted {
		if err := AdvisoryLockTx(ctx, tx, key); err != nil {
			scope.TraceError(err)

			return err
		}
	}

	return nil
}

func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("failed to rollback transaction")
	}
}

// AdvisoryLockTx blocks until the transaction-scoped lock for key is held.
// The lock is released on commit or rollback.
func AdvisoryLockTx(ctx context.Context, tx *sqlx.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("failed to acquire advisory lock %q: %w", key, err)
	}

	return nil
}
