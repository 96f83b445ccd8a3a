package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside or outside a unit of work.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx runs fn in a database transaction bound to a repository that uses it.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *BaseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo portsrepo.LedgerRepository) error) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = r.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := r.Rollback(ctx, tx); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = fn(ctx, &ledgerRepository{q: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReadSnapshot runs fn in a read-only REPEATABLE READ transaction, so every
// query inside it sees the same snapshot.
func (r *BaseRepository) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, repo portsrepo.LedgerReader) error) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin snapshot", err)
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if err := fn(ctx, &ledgerRepository{q: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

const uniqueViolation = "23505"

// translateError maps driver errors onto the application's sentinel errors.
func translateError(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.ErrDuplicate
	}
	return apperrors.NewAppError(500, msg, err)
}

// expectOne turns an UPDATE or DELETE that touched no row into ErrNotFound.
func expectOne(tag pgconn.CommandTag, err error, msg string) error {
	if err != nil {
		return translateError(err, msg)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
