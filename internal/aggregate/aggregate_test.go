package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(category, amount string) model.Transaction {
	return model.Transaction{Type: model.TypeExpense, Category: category, Amount: dec(amount)}
}

func income(category, amount string) model.Transaction {
	return model.Transaction{Type: model.TypeIncome, Category: category, Amount: dec(amount)}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Transaction{
		expense("Food", "100"),
		expense("Housing", "300"),
		income("Income", "500"),
	})

	assert.True(t, s.TotalIncome.Equal(dec("500")))
	assert.True(t, s.TotalExpenses.Equal(dec("400")))
	assert.True(t, s.NetSavings.Equal(dec("100")))

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Housing", s.Categories[0].Name)
	assert.True(t, s.Categories[0].Amount.Equal(dec("300")))
	assert.InDelta(t, 75.0, s.Categories[0].Percentage, 1e-9)
	assert.Equal(t, "Food", s.Categories[1].Name)
	assert.True(t, s.Categories[1].Amount.Equal(dec("100")))
	assert.InDelta(t, 25.0, s.Categories[1].Percentage, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.NetSavings.IsZero())
	assert.Empty(t, s.Categories)
}

func TestNetSavingsIdentity(t *testing.T) {
	s := Summarize([]model.Transaction{
		income("Salary", "2500.75"),
		expense("Food", "312.40"),
		expense("Utilities", "89.99"),
		income("Gift", "50"),
	})
	assert.True(t, s.NetSavings.Equal(s.TotalIncome.Sub(s.TotalExpenses)))
}

func TestPercentagesSumToHundred(t *testing.T) {
	s := Summarize([]model.Transaction{
		expense("Food", "33.33"),
		expense("Housing", "66.67"),
		expense("Transportation", "11.11"),
	})

	sum := 0.0
	for _, c := range s.Categories {
		sum += c.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestCategoryGroupingIsCaseSensitive(t *testing.T) {
	s := Summarize([]model.Transaction{
		expense("Food", "10"),
		expense("food", "20"),
	})

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "food", s.Categories[0].Name)
	assert.Equal(t, "Food", s.Categories[1].Name)
}

func TestTiesKeepEncounterOrder(t *testing.T) {
	s := Summarize([]model.Transaction{
		expense("Shopping", "50"),
		expense("Education", "50"),
		expense("Healthcare", "50"),
	})

	require.Len(t, s.Categories, 3)
	assert.Equal(t, "Shopping", s.Categories[0].Name)
	assert.Equal(t, "Education", s.Categories[1].Name)
	assert.Equal(t, "Healthcare", s.Categories[2].Name)
}

func TestZeroExpensesMeansZeroPercentages(t *testing.T) {
	s := Summarize([]model.Transaction{
		expense("Food", "0"),
		income("Salary", "100"),
	})

	require.Len(t, s.Categories, 1)
	assert.Zero(t, s.Categories[0].Percentage)
}

func TestSignedMagnitudesAreNormalized(t *testing.T) {
	// Amounts that arrive still signed must not cancel out.
	s := Summarize([]model.Transaction{
		{Type: model.TypeExpense, Category: "Food", Amount: dec("-100")},
		{Type: model.TypeExpense, Category: "Food", Amount: dec("100")},
	})
	assert.True(t, s.TotalExpenses.Equal(dec("200")))
}

func TestDisplayPercentageCaps(t *testing.T) {
	c := CategoryBreakdown{Percentage: 104.2}
	assert.Equal(t, 100.0, c.DisplayPercentage())

	c = CategoryBreakdown{Percentage: 42.0}
	assert.Equal(t, 42.0, c.DisplayPercentage())
}

func TestRecent(t *testing.T) {
	txs := []model.Transaction{
		expense("Food", "1"),
		expense("Food", "2"),
		expense("Food", "3"),
	}
	assert.Len(t, Recent(txs, 5), 3)
	assert.Len(t, Recent(txs, 2), 2)
	assert.Empty(t, Recent(nil, 5))
}
