package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/expensepilot-dev/expensepilot/internal/aggregate"
	"github.com/expensepilot-dev/expensepilot/internal/listview"
	"github.com/expensepilot-dev/expensepilot/internal/model"
)

func money(currency string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + currency + d.Abs().StringFixed(2)
	}
	return currency + d.StringFixed(2)
}

// signedMoney renders with an explicit sign, the way the transaction
// table shows amounts: +$5,000.00 for income, -$42.50 for expenses.
func signedMoney(currency string, t model.Transaction) string {
	signed := t.SignedAmount()
	if signed.IsNegative() {
		return "-" + currency + signed.Abs().StringFixed(2)
	}
	return "+" + currency + signed.StringFixed(2)
}

func renderSummary(w io.Writer, currency string, s aggregate.Summary) {
	fmt.Fprintf(w, "Total Income:   %s\n", money(currency, s.TotalIncome))
	fmt.Fprintf(w, "Total Expenses: %s\n", money(currency, s.TotalExpenses))
	fmt.Fprintf(w, "Net Savings:    %s\n", money(currency, s.NetSavings))
}

const barWidth = 30

func renderCategories(w io.Writer, currency string, categories []aggregate.CategoryBreakdown) {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No expenses yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range categories {
		pct := c.DisplayPercentage()
		filled := int(pct / 100 * barWidth)
		bar := strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
		fmt.Fprintf(tw, "%s\t%s\t%5.1f%%\t%s\n", c.Name, money(currency, c.Amount), pct, bar)
	}
	tw.Flush()
}

func renderTransactions(w io.Writer, currency string, txs []model.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tCATEGORY\tTYPE\tAMOUNT\tID")
	for _, t := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.DateString(), t.Description, t.Category, t.Type, signedMoney(currency, t), t.ID)
	}
	tw.Flush()
}

func renderPageFooter(w io.Writer, p listview.Page) {
	if p.TotalPages > 1 {
		fmt.Fprintf(w, "\nPage %d of %d (%d transactions)\n", p.CurrentPage, p.TotalPages, p.TotalCount)
	} else {
		fmt.Fprintf(w, "\n%d transactions\n", p.TotalCount)
	}
}
