package domain

import (
	"github.com/SscSPs/cashbook_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by Money.
const MoneyScale = 2

// MaxAmount is the largest amount a single transaction may carry (100 billion
// in major units). It keeps every realistic balance far inside the int64 range.
const MaxAmount Money = 10_000_000_000_000

var maxAmountDecimal = decimal.NewFromInt(int64(MaxAmount))

// Money is an amount in minor units (cents). All balance arithmetic is done on
// this integer so repeated apply/reverse cycles are exact.
type Money int64

// MoneyFromDecimal converts a non-negative decimal with at most two fractional
// digits into Money.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return 0, apperrors.NewValidationError("amount", "amount must not be negative")
	}
	shifted := d.Shift(MoneyScale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, apperrors.NewValidationError("amount", "amount must have at most 2 decimal places")
	}
	if shifted.GreaterThan(maxAmountDecimal) {
		return 0, apperrors.NewValidationError("amount", "amount must not exceed "+MaxAmount.String())
	}
	return Money(shifted.IntPart()), nil
}

// Add returns m+o. A sum outside the int64 range is a ValidationError instead
// of wrapping around.
func (m Money) Add(o Money) (Money, error) {
	sum := m + o
	if (o > 0 && sum < m) || (o < 0 && sum > m) {
		return 0, apperrors.NewValidationError("balance", "balance is out of range")
	}
	return sum, nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}
