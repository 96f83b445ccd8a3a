package accounting

import (
	"fmt"

	"github.com/SscSPs/cashbook_app/internal/core/domain"
)

// SignedAmount returns the amount a transaction adds to its counterparty's balance.
//
// One convention is used for customers and suppliers alike:
// OUT (business pays or gives credit) -> +amount, the counterparty owes more.
// IN  (business receives money)       -> -amount, the counterparty owes less.
// This is the only place the sign is decided.
func SignedAmount(txn domain.Transaction) domain.Money {
	if txn.Type == domain.TransactionIn {
		return -txn.Amount
	}
	return txn.Amount
}

// ApplyEffect adds the transaction's signed amount to the counterparty balance.
// The balance is left unchanged when the result would overflow.
func ApplyEffect(cp *domain.Counterparty, txn domain.Transaction) error {
	balance, err := cp.Balance.Add(SignedAmount(txn))
	if err != nil {
		return err
	}
	cp.Balance = balance
	return nil
}

// ReverseEffect undoes ApplyEffect for the same transaction.
func ReverseEffect(cp *domain.Counterparty, txn domain.Transaction) error {
	balance, err := cp.Balance.Add(-SignedAmount(txn))
	if err != nil {
		return err
	}
	cp.Balance = balance
	return nil
}

// SumSignedAmounts is the balance a counterparty must have given its transactions.
func SumSignedAmounts(txns []domain.Transaction) (domain.Money, error) {
	balances, err := RunningBalances(txns)
	if err != nil || len(balances) == 0 {
		return 0, err
	}
	return balances[len(balances)-1], nil
}

// RunningBalances returns the balance after each transaction, in the given order.
func RunningBalances(txns []domain.Transaction) ([]domain.Money, error) {
	balances := make([]domain.Money, len(txns))
	var running domain.Money
	for i, txn := range txns {
		next, err := running.Add(SignedAmount(txn))
		if err != nil {
			return nil, fmt.Errorf("running balance at transaction %s: %w", txn.TransactionID, err)
		}
		running = next
		balances[i] = running
	}
	return balances, nil
}
