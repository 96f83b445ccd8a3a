package domain

import "time"

// MonthlyAnalytics is the derived per-month summary of a business's transactions.
// Month is "YYYY-MM" of the transaction date taken in UTC.
type MonthlyAnalytics struct {
	Month    string `json:"month"`
	TotalIn  Money  `json:"totalIn"`
	TotalOut Money  `json:"totalOut"`
	Balance  Money  `json:"balance"` // TotalIn - TotalOut
}

// BalanceMismatch reports a counterparty whose stored balance disagrees with its transactions.
type BalanceMismatch struct {
	CounterpartyID string           `json:"counterpartyID"`
	Role           CounterpartyRole `json:"role"`
	Name           string           `json:"name"`
	Stored         Money            `json:"stored"`
	Computed       Money            `json:"computed"`
}

// StatementEntry is one transaction together with the counterparty balance right after it.
type StatementEntry struct {
	Transaction    Transaction `json:"transaction"`
	RunningBalance Money       `json:"runningBalance"`
}

// CounterpartyStatement lists a counterparty's transactions oldest first with running balances.
type CounterpartyStatement struct {
	Counterparty   Counterparty     `json:"counterparty"`
	Entries        []StatementEntry `json:"entries"`
	ClosingBalance Money            `json:"closingBalance"`
}

// LedgerExport is everything an external renderer needs to print a business ledger.
// Transactions are oldest first; the name maps resolve CustomerID and SupplierID.
type LedgerExport struct {
	Business      Business          `json:"business"`
	Transactions  []Transaction     `json:"transactions"`
	CustomerNames map[string]string `json:"customerNames"`
	SupplierNames map[string]string `json:"supplierNames"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}
