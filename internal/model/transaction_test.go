package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	tt, err := ParseTransactionType("Income")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, tt)

	tt, err = ParseTransactionType("Expense")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, tt)

	_, err = ParseTransactionType("expense")
	require.Error(t, err)
	_, err = ParseTransactionType("")
	require.Error(t, err)
}

func TestSignedAmount(t *testing.T) {
	exp := Transaction{Type: TypeExpense, Amount: decimal.RequireFromString("42.50")}
	assert.True(t, exp.SignedAmount().Equal(decimal.RequireFromString("-42.50")))

	inc := Transaction{Type: TypeIncome, Amount: decimal.RequireFromString("1000")}
	assert.True(t, inc.SignedAmount().Equal(decimal.RequireFromString("1000")))

	// A magnitude that arrived negative is still normalized by sign.
	weird := Transaction{Type: TypeIncome, Amount: decimal.RequireFromString("-5")}
	assert.True(t, weird.SignedAmount().Equal(decimal.RequireFromString("5")))
}

func TestDateString(t *testing.T) {
	tx := Transaction{Date: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03-15", tx.DateString())
}
