package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashbook_app/internal/models"
	"github.com/SscSPs/cashbook_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// ledgerRepository implements LedgerRepository on top of a querier.
type ledgerRepository struct {
	q querier
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

const businessSelect = `
SELECT business_id, name, created_at, created_by, last_updated_at, last_updated_by
FROM businesses
`

const counterpartySelect = `
SELECT counterparty_id, business_id, role, name, phone_number, balance,
	created_at, created_by, last_updated_at, last_updated_by
FROM counterparties
`

const transactionSelect = `
SELECT transaction_id, business_id, type, amount, customer_id, supplier_id, description,
	txn_date, category, payment_mode, created_at, created_by, last_updated_at, last_updated_by
FROM transactions
`

func collect[M any](ctx context.Context, q querier, msg string, query string, args ...any) ([]M, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, msg)
	}
	defer rows.Close()
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, translateError(err, msg)
	}
	return ms, nil
}

func collectOne[M any](ctx context.Context, q querier, msg string, query string, args ...any) (*M, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, msg)
	}
	defer rows.Close()
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[M])
	if err != nil {
		return nil, translateError(err, msg)
	}
	return &m, nil
}

// --- Businesses ---

func (r *ledgerRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	_, err := r.q.Exec(ctx, `
		INSERT INTO businesses (business_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, m.BusinessID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save business "+business.BusinessID)
	}
	return nil
}

func (r *ledgerRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	m, err := collectOne[models.Business](ctx, r.q, "failed to find business "+businessID,
		businessSelect+`WHERE business_id = $1`, businessID)
	if err != nil {
		return nil, err
	}
	b := mapping.ToDomainBusiness(*m)
	return &b, nil
}

func (r *ledgerRepository) ListBusinessesByOwner(ctx context.Context, userID string) ([]domain.Business, error) {
	ms, err := collect[models.Business](ctx, r.q, "failed to list businesses",
		businessSelect+`WHERE created_by = $1 ORDER BY name COLLATE "C", business_id`, userID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainBusinessSlice(ms), nil
}

func (r *ledgerRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE businesses SET name = $1, last_updated_at = $2, last_updated_by = $3
		WHERE business_id = $4;
	`, business.Name, business.LastUpdatedAt, business.LastUpdatedBy, business.BusinessID)
	return expectOne(tag, err, "failed to update business "+business.BusinessID)
}

func (r *ledgerRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM businesses WHERE business_id = $1;`, businessID)
	return expectOne(tag, err, "failed to delete business "+businessID)
}

// --- Counterparties ---

func (r *ledgerRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	m := mapping.ToModelCounterparty(cp)
	_, err := r.q.Exec(ctx, `
		INSERT INTO counterparties (
			counterparty_id, business_id, role, name, phone_number, balance,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`, m.CounterpartyID, m.BusinessID, m.Role, m.Name, m.PhoneNumber, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save counterparty "+cp.CounterpartyID)
	}
	return nil
}

func (r *ledgerRepository) findCounterparty(ctx context.Context, businessID, counterpartyID, suffix string) (*domain.Counterparty, error) {
	m, err := collectOne[models.Counterparty](ctx, r.q, "failed to find counterparty "+counterpartyID,
		counterpartySelect+`WHERE business_id = $1 AND counterparty_id = $2`+suffix, businessID, counterpartyID)
	if err != nil {
		return nil, err
	}
	cp := mapping.ToDomainCounterparty(*m)
	return &cp, nil
}

func (r *ledgerRepository) FindCounterpartyByID(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return r.findCounterparty(ctx, businessID, counterpartyID, "")
}

// FindCounterpartyForUpdate holds a row lock until the surrounding transaction ends.
func (r *ledgerRepository) FindCounterpartyForUpdate(ctx context.Context, businessID, counterpartyID string) (*domain.Counterparty, error) {
	return r.findCounterparty(ctx, businessID, counterpartyID, " FOR UPDATE")
}

func (r *ledgerRepository) ListCounterparties(ctx context.Context, businessID string, role domain.CounterpartyRole, search string) ([]domain.Counterparty, error) {
	where := []string{"business_id = $1"}
	args := []any{businessID}
	if role != "" {
		args = append(args, string(role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if search != "" {
		args = append(args, search)
		n := len(args)
		where = append(where, fmt.Sprintf("(strpos(lower(name), lower($%d)) > 0 OR strpos(phone_number, $%d) > 0)", n, n))
	}
	query := counterpartySelect + "WHERE " + strings.Join(where, " AND ") +
		` ORDER BY lower(name) COLLATE "C", counterparty_id`

	ms, err := collect[models.Counterparty](ctx, r.q, "failed to list counterparties", query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainCounterpartySlice(ms), nil
}

func (r *ledgerRepository) UpdateCounterpartyProfile(ctx context.Context, cp domain.Counterparty) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE counterparties
		SET name = $1, phone_number = $2, last_updated_at = $3, last_updated_by = $4
		WHERE business_id = $5 AND counterparty_id = $6;
	`, cp.Name, cp.PhoneNumber, cp.LastUpdatedAt, cp.LastUpdatedBy, cp.BusinessID, cp.CounterpartyID)
	return expectOne(tag, err, "failed to update counterparty "+cp.CounterpartyID)
}

func (r *ledgerRepository) UpdateCounterpartyBalance(ctx context.Context, cp domain.Counterparty) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE counterparties
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE business_id = $4 AND counterparty_id = $5;
	`, int64(cp.Balance), cp.LastUpdatedAt, cp.LastUpdatedBy, cp.BusinessID, cp.CounterpartyID)
	return expectOne(tag, err, "failed to update balance of counterparty "+cp.CounterpartyID)
}

func (r *ledgerRepository) DeleteCounterparty(ctx context.Context, businessID, counterpartyID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM counterparties WHERE business_id = $1 AND counterparty_id = $2;`,
		businessID, counterpartyID)
	return expectOne(tag, err, "failed to delete counterparty "+counterpartyID)
}

func (r *ledgerRepository) DeleteCounterpartiesByBusiness(ctx context.Context, businessID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM counterparties WHERE business_id = $1;`, businessID)
	if err != nil {
		return 0, translateError(err, "failed to delete counterparties of business "+businessID)
	}
	return tag.RowsAffected(), nil
}

// --- Transactions ---

func (r *ledgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelLedgerTransaction(txn)
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (
			transaction_id, business_id, type, amount, customer_id, supplier_id, description,
			txn_date, category, payment_mode, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`, m.TransactionID, m.BusinessID, m.Type, m.Amount, m.CustomerID, m.SupplierID, m.Description,
		m.TxnDate, m.Category, m.PaymentMode, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save transaction "+txn.TransactionID)
	}
	return nil
}

func (r *ledgerRepository) FindTransactionByID(ctx context.Context, businessID, transactionID string) (*domain.Transaction, error) {
	m, err := collectOne[models.LedgerTransaction](ctx, r.q, "failed to find transaction "+transactionID,
		transactionSelect+`WHERE business_id = $1 AND transaction_id = $2`, businessID, transactionID)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, businessID string, filter domain.TransactionFilter, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error) {
	where := []string{"business_id = $1"}
	args := []any{businessID}
	add := func(clause string, values ...any) {
		placeholders := make([]any, len(values))
		for i, v := range values {
			args = append(args, v)
			placeholders[i] = len(args)
		}
		where = append(where, fmt.Sprintf(clause, placeholders...))
	}

	if filter.Search != "" {
		add("strpos(lower(description), lower($%d)) > 0", filter.Search)
	}
	if filter.From != nil {
		add("txn_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("txn_date <= $%d", *filter.To)
	}
	if filter.Type != "" {
		add("type = $%d", string(filter.Type))
	}
	if filter.PaymentMode != "" {
		add("payment_mode = $%d", string(filter.PaymentMode))
	}
	if filter.Category != "" {
		add("category = $%d", string(filter.Category))
	}
	if filter.CounterpartyID != "" {
		add("(customer_id = $%d OR supplier_id = $%d)", filter.CounterpartyID, filter.CounterpartyID)
	}
	if after != nil {
		add("(txn_date, created_at, transaction_id) < ($%d, $%d, $%d)", after.Date, after.CreatedAt, after.TransactionID)
	}

	query := transactionSelect + "WHERE " + strings.Join(where, " AND ") +
		" ORDER BY txn_date DESC, created_at DESC, transaction_id DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	ms, err := collect[models.LedgerTransaction](ctx, r.q, "failed to list transactions", query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *ledgerRepository) ListTransactionsChronological(ctx context.Context, businessID, counterpartyID string) ([]domain.Transaction, error) {
	query := transactionSelect + "WHERE business_id = $1"
	args := []any{businessID}
	if counterpartyID != "" {
		query += " AND (customer_id = $2 OR supplier_id = $2)"
		args = append(args, counterpartyID)
	}
	query += " ORDER BY txn_date, created_at, transaction_id"

	ms, err := collect[models.LedgerTransaction](ctx, r.q, "failed to list transactions", query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *ledgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelLedgerTransaction(txn)
	tag, err := r.q.Exec(ctx, `
		UPDATE transactions
		SET type = $1, amount = $2, customer_id = $3, supplier_id = $4, description = $5,
			txn_date = $6, category = $7, payment_mode = $8, last_updated_at = $9, last_updated_by = $10
		WHERE business_id = $11 AND transaction_id = $12;
	`, m.Type, m.Amount, m.CustomerID, m.SupplierID, m.Description,
		m.TxnDate, m.Category, m.PaymentMode, m.LastUpdatedAt, m.LastUpdatedBy, m.BusinessID, m.TransactionID)
	return expectOne(tag, err, "failed to update transaction "+txn.TransactionID)
}

func (r *ledgerRepository) DeleteTransaction(ctx context.Context, businessID, transactionID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE business_id = $1 AND transaction_id = $2;`,
		businessID, transactionID)
	return expectOne(tag, err, "failed to delete transaction "+transactionID)
}

func (r *ledgerRepository) DeleteTransactionsByCounterparty(ctx context.Context, businessID, counterpartyID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM transactions
		WHERE business_id = $1 AND (customer_id = $2 OR supplier_id = $2);
	`, businessID, counterpartyID)
	if err != nil {
		return 0, translateError(err, "failed to delete transactions of counterparty "+counterpartyID)
	}
	return tag.RowsAffected(), nil
}

func (r *ledgerRepository) DeleteTransactionsByBusiness(ctx context.Context, businessID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE business_id = $1;`, businessID)
	if err != nil {
		return 0, translateError(err, "failed to delete transactions of business "+businessID)
	}
	return tag.RowsAffected(), nil
}
