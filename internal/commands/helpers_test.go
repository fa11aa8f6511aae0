package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensepilot-dev/expensepilot/internal/aggregate"
	"github.com/expensepilot-dev/expensepilot/internal/listview"
	"github.com/expensepilot-dev/expensepilot/internal/model"
)

func TestParseSort(t *testing.T) {
	s, err := parseSort("amount", "asc")
	require.NoError(t, err)
	assert.Equal(t, listview.Sort{Field: listview.SortAmount, Order: listview.OrderAsc}, s)

	_, err = parseSort("id", "asc")
	require.Error(t, err)

	_, err = parseSort("date", "sideways")
	require.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	s, e, err := parseDateRange("2024-01-01", "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), e)

	s, e, err = parseDateRange("", "")
	require.NoError(t, err)
	assert.True(t, s.IsZero())
	assert.True(t, e.IsZero())

	_, _, err = parseDateRange("2024-02-01", "2024-01-01")
	require.Error(t, err)

	_, _, err = parseDateRange("01/02/2024", "")
	require.Error(t, err)
}

func TestNormalizeAll(t *testing.T) {
	assert.Empty(t, normalizeAll("all"))
	assert.Equal(t, "Food", normalizeAll("Food"))
}

func TestBuildTransaction(t *testing.T) {
	tx, err := buildTransaction("Expense", "42.50", "Food", "2024-03-15", "Groceries")
	require.NoError(t, err)
	assert.Equal(t, model.TypeExpense, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("42.5")))
	assert.Equal(t, "2024-03-15", tx.DateString())

	_, err = buildTransaction("Expense", "-5", "Food", "2024-03-15", "")
	require.Error(t, err, "amounts are entered positive; type carries direction")

	_, err = buildTransaction("Expense", "5", "Crypto", "2024-03-15", "")
	require.Error(t, err)

	// Income categories are free-form.
	_, err = buildTransaction("Income", "5", "Side Hustle", "2024-03-15", "")
	require.NoError(t, err)

	_, err = buildTransaction("Expense", "5", "Food", "15-03-2024", "")
	require.Error(t, err)
}

func TestApplyEdits(t *testing.T) {
	current := model.Transaction{
		ID:          "t1",
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Old note",
		Category:    "Food",
		Type:        model.TypeExpense,
		Amount:      decimal.RequireFromString("10"),
	}

	edited, err := applyEdits(current, "", "25", "", "", "", false)
	require.NoError(t, err)
	assert.True(t, edited.Amount.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, "Food", edited.Category, "unset flags keep current values")
	assert.Equal(t, "Old note", edited.Description)

	edited, err = applyEdits(current, "", "", "", "", "", true)
	require.NoError(t, err)
	assert.Empty(t, edited.Description, "explicit empty description clears the note")

	_, err = applyEdits(current, "", "", "Crypto", "", "", false)
	require.Error(t, err)
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "$42.50", money("$", decimal.RequireFromString("42.5")))
	assert.Equal(t, "-$3.00", money("$", decimal.RequireFromString("-3")))

	exp := model.Transaction{Type: model.TypeExpense, Amount: decimal.RequireFromString("42.5")}
	assert.Equal(t, "-$42.50", signedMoney("$", exp))
	inc := model.Transaction{Type: model.TypeIncome, Amount: decimal.RequireFromString("5000")}
	assert.Equal(t, "+$5000.00", signedMoney("$", inc))
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	renderSummary(&buf, "$", aggregate.Summary{
		TotalIncome:   decimal.RequireFromString("500"),
		TotalExpenses: decimal.RequireFromString("400"),
		NetSavings:    decimal.RequireFromString("100"),
	})
	out := buf.String()
	assert.Contains(t, out, "Total Income:   $500.00")
	assert.Contains(t, out, "Total Expenses: $400.00")
	assert.Contains(t, out, "Net Savings:    $100.00")
}

func TestRenderCategoriesCapsBar(t *testing.T) {
	var buf bytes.Buffer
	renderCategories(&buf, "$", []aggregate.CategoryBreakdown{
		{Name: "Housing", Amount: decimal.RequireFromString("300"), Percentage: 104.2},
	})
	assert.Contains(t, buf.String(), "100.0%", "display percentage never exceeds 100")
}
