// Package aggregate derives dashboard figures from a transaction list.
// Everything here is pure: same input, same output, no side effects.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// CategoryBreakdown is the expense total and share for one category.
// Percentage is the raw computed value; rendering caps it at 100.
type CategoryBreakdown struct {
	Name       string
	Amount     decimal.Decimal
	Percentage float64
}

// Summary holds the dashboard totals and the per-category breakdown,
// sorted descending by amount.
type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetSavings    decimal.Decimal
	Categories    []CategoryBreakdown
}

var oneHundred = decimal.New(100, 0)

// Summarize computes totals and the category breakdown. An empty input
// yields all-zero totals and no categories. Category grouping is exact
// and case-sensitive; ties in the descending sort keep first-encounter
// order.
func Summarize(txs []model.Transaction) Summary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	categoryTotals := make(map[string]decimal.Decimal)
	var categoryOrder []string

	for _, tx := range txs {
		amount := tx.Amount.Abs()
		switch tx.Type {
		case model.TypeIncome:
			totalIncome = totalIncome.Add(amount)
		case model.TypeExpense:
			totalExpenses = totalExpenses.Add(amount)
			if _, seen := categoryTotals[tx.Category]; !seen {
				categoryOrder = append(categoryOrder, tx.Category)
			}
			categoryTotals[tx.Category] = categoryTotals[tx.Category].Add(amount)
		}
	}

	categories := make([]CategoryBreakdown, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		amount := categoryTotals[name]
		pct := 0.0
		if totalExpenses.IsPositive() {
			pct = amount.Div(totalExpenses).Mul(oneHundred).InexactFloat64()
		}
		categories = append(categories, CategoryBreakdown{
			Name:       name,
			Amount:     amount,
			Percentage: pct,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	return Summary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetSavings:    totalIncome.Sub(totalExpenses),
		Categories:    categories,
	}
}

// DisplayPercentage is the percentage capped for rendering.
func (c CategoryBreakdown) DisplayPercentage() float64 {
	if c.Percentage > 100 {
		return 100
	}
	return c.Percentage
}

// Recent returns the first n transactions of the list, fewer when the
// list is shorter. The dashboard shows the latest five.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	if n > len(txs) {
		n = len(txs)
	}
	return txs[:n]
}
