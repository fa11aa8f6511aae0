package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// ParseTransactionType parses a wire/CLI type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	}
	return "", fmt.Errorf("invalid transaction type %q (want Income or Expense)", s)
}

// Transaction is a single income or expense record.
//
// Amount is always a non-negative magnitude; direction is carried
// exclusively by Type. The remote API signs expense amounts negative on
// the wire — the api package converts in both directions so nothing
// past that boundary has to reconcile sign against type.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Category    string
	Type        TransactionType
	Amount      decimal.Decimal
}

// SignedAmount returns the amount with the wire-format sign convention:
// negative for expenses, positive for income.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Abs().Neg()
	}
	return t.Amount.Abs()
}

// DateString formats the transaction date in the wire format.
func (t Transaction) DateString() string {
	return t.Date.Format(DateFormat)
}

// DateFormat is the calendar-date layout used on the wire and in CSV.
const DateFormat = "2006-01-02"
