// Package sqlite is a single-file LedgerStore for local and embedded use.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeLayout is fixed width so that text comparison orders timestamps.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite LedgerStore. Transactions begin IMMEDIATE, so a unit of
// work holds the database write lock from its first statement and row locks
// are not needed.
type Store struct {
	*ledgerRepository
	db *sql.DB
}

// Ensure Store implements portsrepo.LedgerStore
var _ portsrepo.LedgerStore = (*Store)(nil)

// DSN builds the connection string for the database file at path.
func DSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Set("_txlock", "immediate")
	return "file:" + path + "?" + params.Encode()
}

// Open creates the database file if needed, applies migrations and returns a Store.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	dsn := DSN(path)
	if err := RunMigrations(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{ledgerRepository: &ledgerRepository{q: db}, db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewRepositoryProvider opens the database at path and wraps it for the service container.
func NewRepositoryProvider(ctx context.Context, path string) (portsrepo.RepositoryProvider, error) {
	store, err := Open(ctx, path)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{
		Ledger: store,
		Close:  func(context.Context) error { return store.Close() },
	}, nil
}

// WithinTx runs fn in a transaction that commits when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repo portsrepo.LedgerRepository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = fn(ctx, &ledgerRepository{q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// ReadSnapshot runs fn in one transaction. The DSN makes every transaction
// take the write lock up front, so no writer can commit while fn reads.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, repo portsrepo.LedgerReader) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin snapshot", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, &ledgerRepository{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit snapshot", err)
	}
	return nil
}

// translateError maps driver errors onto the application's sentinel errors.
func translateError(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return apperrors.ErrDuplicate
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return apperrors.ErrDuplicate
	}
	return apperrors.NewAppError(500, msg, err)
}

func expectOne(res sql.Result, err error, msg string) error {
	if err != nil {
		return translateError(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, msg, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func rowsAffected(res sql.Result, err error, msg string) (int64, error) {
	if err != nil {
		return 0, translateError(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.NewAppError(500, msg, err)
	}
	return n, nil
}
