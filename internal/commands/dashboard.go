package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/expensepilot-dev/expensepilot/internal/aggregate"
	"github.com/expensepilot-dev/expensepilot/internal/api"
	"github.com/expensepilot-dev/expensepilot/internal/listview"
)

const recentCount = 5

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show income, expenses, savings, and category breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			txs, fromCache, err := a.fetchTransactions(cmd.Context(), api.ListFilters{
				SortField: string(listview.SortDate),
				SortOrder: string(listview.OrderDesc),
			})
			if err != nil {
				return err
			}
			if fromCache {
				fmt.Fprintln(os.Stderr, "warning: could not reach the server; showing last cached data")
			}

			currency := a.cfg.Display.Currency
			summary := aggregate.Summarize(txs)

			out := cmd.OutOrStdout()
			renderSummary(out, currency, summary)

			fmt.Fprintln(out, "\nExpense Categories")
			renderCategories(out, currency, summary.Categories)

			recent := aggregate.Recent(listview.SortTransactions(txs, listview.DefaultSort()), recentCount)
			if len(recent) > 0 {
				fmt.Fprintln(out, "\nRecent Transactions")
				renderTransactions(out, currency, recent)
			}
			return nil
		},
	}
}
