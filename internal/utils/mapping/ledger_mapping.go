package mapping

import (
	"github.com/SscSPs/cashbook_app/internal/core/domain"
	"github.com/SscSPs/cashbook_app/internal/models"
)

// ToModelBusiness converts a domain Business to a model Business
func ToModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:  d.BusinessID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBusiness converts a model Business to a domain Business
func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBusinessSlice converts a slice of model Businesses to domain Businesses
func ToDomainBusinessSlice(ms []models.Business) []domain.Business {
	ds := make([]domain.Business, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBusiness(m)
	}
	return ds
}

// ToModelCounterparty converts a domain Counterparty to a model Counterparty
func ToModelCounterparty(d domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: d.CounterpartyID,
		BusinessID:     d.BusinessID,
		Role:           string(d.Role),
		Name:           d.Name,
		PhoneNumber:    d.PhoneNumber,
		Balance:        int64(d.Balance),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCounterparty converts a model Counterparty to a domain Counterparty
func ToDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		BusinessID:     m.BusinessID,
		Role:           domain.CounterpartyRole(m.Role),
		Name:           m.Name,
		PhoneNumber:    m.PhoneNumber,
		Balance:        domain.Money(m.Balance),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCounterpartySlice converts a slice of model Counterparties to domain Counterparties
func ToDomainCounterpartySlice(ms []models.Counterparty) []domain.Counterparty {
	ds := make([]domain.Counterparty, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCounterparty(m)
	}
	return ds
}

// ToModelLedgerTransaction converts a domain Transaction to a model LedgerTransaction
func ToModelLedgerTransaction(d domain.Transaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID: d.TransactionID,
		BusinessID:    d.BusinessID,
		Type:          string(d.Type),
		Amount:        int64(d.Amount),
		CustomerID:    nullableString(d.CustomerID),
		SupplierID:    nullableString(d.SupplierID),
		Description:   d.Description,
		TxnDate:       d.Date,
		Category:      string(d.Category),
		PaymentMode:   string(d.PaymentMode),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model LedgerTransaction to a domain Transaction
func ToDomainTransaction(m models.LedgerTransaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		BusinessID:    m.BusinessID,
		Type:          domain.TransactionType(m.Type),
		Amount:        domain.Money(m.Amount),
		CustomerID:    stringValue(m.CustomerID),
		SupplierID:    stringValue(m.SupplierID),
		Description:   m.Description,
		Date:          m.TxnDate.UTC(),
		Category:      domain.CounterpartyRole(m.Category),
		PaymentMode:   domain.PaymentMode(m.PaymentMode),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model LedgerTransactions to domain Transactions
func ToDomainTransactionSlice(ms []models.LedgerTransaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
