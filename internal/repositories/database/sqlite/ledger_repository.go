package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_app/internal/models"
	"github.com/SscSPs/cashbook_app/internal/utils/mapping"
)

// ledgerRepository implements LedgerRepository on top of a querier.
type ledgerRepository struct {
	q querier
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

const businessColumns = `business_id, name, created_at, created_by, last_updated_at, last_updated_by`

const counterpartyColumns = `counterparty_id, business_id, role, name, phone_number, balance,
	created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, business_id, type, amount, customer_id, supplier_id, description,
	txn_date, category, payment_mode, created_at, created_by, last_updated_at, last_updated_by`

type scanner interface {
	Scan(dest ...any) error
}

// auditScan collects the four audit columns as text and converts them afterwards.
type auditScan struct {
	createdAt, lastUpdatedAt string
	m                        *models.AuditFields
}

func (a *auditScan) dest() []any {
	return []any{&a.createdAt, &a.m.CreatedBy, &a.lastUpdatedAt, &a.m.LastUpdatedBy}
}

func (a *auditScan) finish() error {
	var err error
	if a.m.CreatedAt, err = parseTime(a.createdAt); err != nil {
		return err
	}
	a.m.LastUpdatedAt, err = parseTime(a.lastUpdatedAt)
	return err
}

func scanBusiness(s scanner) (domain.Business, error) {
	var m models.Business
	audit := auditScan{m: &m.AuditFields}
	if err := s.Scan(append([]any{&m.BusinessID, &m.Name}, audit.dest()...)...); err != nil {
		return domain.Business{}, err
	}
	if err := audit.finish(); err != nil {
		return domain.Business{}, err
	}
	return mapping.ToDomainBusiness(m), nil
}

func scanCounterparty(s scanner) (domain.Counterparty, error) {
	var m models.Counterparty
	audit := auditScan{m: &m.AuditFields}
	dest := []any{&m.CounterpartyID, &m.BusinessID, &m.Role, &m.Name, &m.PhoneNumber, &m.Balance}
	if err := s.Scan(append(dest, audit.dest()...)...); err != nil {
		return domain.Counterparty{}, err
	}
	if err := audit.finish(); err != nil {
		return domain.Counterparty{}, err
	}
	return mapping.ToDomainCounterparty(m), nil
}

func scanTransaction(s scanner) (domain.Transaction, error) {
	var (
		m       models.LedgerTransaction
		txnDate string
	)
	audit := auditScan{m: &m.AuditFields}
	dest := []any{&m.TransactionID, &m.BusinessID, &m.Type, &m.Amount, &m.CustomerID, &m.SupplierID,
		&m.Description, &txnDate, &m.Category, &m.PaymentMode}
	if err := s.Scan(append(dest, audit.dest()...)...); err != nil {
		return domain.Transaction{}, err
	}
	if err := audit.finish(); err != nil {
		return domain.Transaction{}, err
	}
	var err error
	if m.TxnDate, err = parseTime(txnDate); err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func queryAll[T any](ctx context.Context, q querier, msg string, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, msg)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, msg, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, msg)
	}
	return result, nil
}

func queryOne[T any](ctx context.Context, q querier, msg string, scan func(scanner) (T, error), query string, args ...any) (*T, error) {
	item, err := scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, msg)
	}
	return &item, nil
}

// --- Businesses ---

func (r *ledgerRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	_, err := r.q.ExecContext(ctx, `INSERT INTO businesses (`+businessColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.BusinessID, m.Name, formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save business "+business.BusinessID)
	}
	return nil
}

func (r *ledgerRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	return queryOne(ctx, r.q, "failed to find business "+businessID, scanBusiness,
		`SELECT `+businessColumns+` FROM businesses WHERE business_id = ?`, businessID)
}

func (r *ledgerRepository) ListBusinessesByOwner(ctx context.Context, userID string) ([]domain.Business, error) {
	return queryAll(ctx, r.q, "failed to list businesses", scanBusiness,
		`SELECT `+businessColumns+` FROM businesses WHERE created_by = ? ORDER BY name, business_id`, userID)
}

func (r *ledgerRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE businesses SET name = ?, last_updated_at = ?, last_updated_by = ? WHERE business_id = ?`,
		business.Name, formatTime(business.LastUpdatedAt), business.LastUpdatedBy, business.BusinessID)
	return expectOne(res, err, "failed to update business "+business.BusinessID)
}

func (r *ledgerRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM businesses WHERE business_id = ?`, businessID)
	return expectOne(res, err, "failed to delete business "+businessID)
}

// --- Counterparties ---

func (r *ledgerRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	m := mapping.ToModelCounterparty(cp)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO counterparties (`+counterpartyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CounterpartyID, m.BusinessID, m.Role, m.Name, m.PhoneNumber, m.Balance,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save counterparty "+cp.CounterpartyID)
	}
	return nil
}

func (r *ledgerRepository) FindCounterpartyByID(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return queryOne(ctx, r.q, "failed to find counterparty "+counterpartyID, scanCounterparty,
		`SELECT `+counterpartyColumns+` FROM counterparties WHERE business_id = ? AND counterparty_id = ?`,
		businessID, counterpartyID)
}

// FindCounterpartyForUpdate is a plain read: an IMMEDIATE transaction already
// excludes every other writer.
func (r *ledgerRepository) FindCounterpartyForUpdate(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return r.FindCounterpartyByID(ctx, businessID, counterpartyID)
}

func (r *ledgerRepository) ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, search string) ([]domain.Counterparty, error) {
	where := []string{"business_id = ?"}
	args := []any{businessID}
	if role != "" {
		where = append(where, "role = ?")
		args = append(args, string(role))
	}
	if search != "" {
		where = append(where, "(instr(lower(name), lower(?)) > 0 OR instr(phone_number, ?) > 0)")
		args = append(args, search, search)
	}
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY lower(name), counterparty_id`
	return queryAll(ctx, r.q, "failed to list counterparties", scanCounterparty, query, args...)
}

func (r *ledgerRepository) UpdateCounterpartyProfile(ctx context.Context, cp domain.Counterparty) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE counterparties
		SET name = ?, phone_number = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND counterparty_id = ?`,
		cp.Name, cp.PhoneNumber, formatTime(cp.LastUpdatedAt), cp.LastUpdatedBy, cp.BusinessID, cp.CounterpartyID)
	return expectOne(res, err, "failed to update counterparty "+cp.CounterpartyID)
}

func (r *ledgerRepository) UpdateCounterpartyBalance(ctx context.Context, cp domain.Counterparty) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE counterparties
		SET balance = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND counterparty_id = ?`,
		int64(cp.Balance), formatTime(cp.LastUpdatedAt), cp.LastUpdatedBy, cp.BusinessID, cp.CounterpartyID)
	return expectOne(res, err, "failed to update balance of counterparty "+cp.CounterpartyID)
}

func (r *ledgerRepository) DeleteCounterparty(ctx context.Context, businessID, counterpartyID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM counterparties WHERE business_id = ? AND counterparty_id = ?`,
		businessID, counterpartyID)
	return expectOne(res, err, "failed to delete counterparty "+counterpartyID)
}

func (r *ledgerRepository) DeleteCounterpartiesByBusiness(ctx context.Context, businessID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM counterparties WHERE business_id = ?`, businessID)
	return rowsAffected(res, err, "failed to delete counterparties of business "+businessID)
}

// --- Transactions ---

func (r *ledgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelLedgerTransaction(txn)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.BusinessID, m.Type, m.Amount, m.CustomerID, m.SupplierID, m.Description,
		formatTime(m.TxnDate), m.Category, m.PaymentMode,
		formatTime(m.CreatedAt), m.CreatedBy, formatTime(m.LastUpdatedAt), m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save transaction "+txn.TransactionID)
	}
	return nil
}

func (r *ledgerRepository) FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error) {
	return queryOne(ctx, r.q, "failed to find transaction "+transactionID, scanTransaction,
		`SELECT `+transactionColumns+` FROM transactions WHERE business_id = ? AND transaction_id = ?`,
		businessID, transactionID)
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error) {
	where := []string{"business_id = ?"}
	args := []any{businessID}
	add := func(clause string, values ...any) {
		where = append(where, clause)
		args = append(args, values...)
	}

	if filter.Search != "" {
		add("instr(lower(description), lower(?)) > 0", filter.Search)
	}
	if filter.From != nil {
		add("txn_date >= ?", formatTime(*filter.From))
	}
	if filter.To != nil {
		add("txn_date <= ?", formatTime(*filter.To))
	}
	if filter.Type != "" {
		add("type = ?", string(filter.Type))
	}
	if filter.PaymentMode != "" {
		add("payment_mode = ?", string(filter.PaymentMode))
	}
	if filter.Category != "" {
		add("category = ?", string(filter.Category))
	}
	if filter.CounterpartyID != "" {
		add("(customer_id = ? OR supplier_id = ?)", filter.CounterpartyID, filter.CounterpartyID)
	}
	if after != nil {
		add("(txn_date, created_at, transaction_id) < (?, ?, ?)",
			formatTime(after.Date), formatTime(after.CreatedAt), after.TransactionID)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY txn_date DESC, created_at DESC, transaction_id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return queryAll(ctx, r.q, "failed to list transactions", scanTransaction, query, args...)
}

func (r *ledgerRepository) ListTransactionsChronological(ctx context.Context, businessID, counterpartyID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE business_id = ?`
	args := []any{businessID}
	if counterpartyID != "" {
		query += ` AND (customer_id = ? OR supplier_id = ?)`
		args = append(args, counterpartyID, counterpartyID)
	}
	query += ` ORDER BY txn_date, created_at, transaction_id`
	return queryAll(ctx, r.q, "failed to list transactions", scanTransaction, query, args...)
}

func (r *ledgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelLedgerTransaction(txn)
	res, err := r.q.ExecContext(ctx, `
		UPDATE transactions
		SET type = ?, amount = ?, customer_id = ?, supplier_id = ?, description = ?,
			txn_date = ?, category = ?, payment_mode = ?, last_updated_at = ?, last_updated_by = ?
		WHERE business_id = ? AND transaction_id = ?`,
		m.Type, m.Amount, m.CustomerID, m.SupplierID, m.Description,
		formatTime(m.TxnDate), m.Category, m.PaymentMode, formatTime(m.LastUpdatedAt), m.LastUpdatedBy,
		m.BusinessID, m.TransactionID)
	return expectOne(res, err, "failed to update transaction "+txn.TransactionID)
}

func (r *ledgerRepository) DeleteTransaction(ctx context.Context, businessID, transactionID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE business_id = ? AND transaction_id = ?`,
		businessID, transactionID)
	return expectOne(res, err, "failed to delete transaction "+transactionID)
}

func (r *ledgerRepository) DeleteTransactionsByCounterparty(ctx context.Context, businessID, counterpartyID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM transactions WHERE business_id = ? AND (customer_id = ? OR supplier_id = ?)`,
		businessID, counterpartyID, counterpartyID)
	return rowsAffected(res, err, "failed to delete transactions of counterparty "+counterpartyID)
}

func (r *ledgerRepository) DeleteTransactionsByBusiness(ctx context.Context, businessID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM transactions WHERE business_id = ?`, businessID)
	return rowsAffected(res, err, "failed to delete transactions of business "+businessID)
}
