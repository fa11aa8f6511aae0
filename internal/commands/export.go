package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/expensepilot-dev/expensepilot/internal/api"
	"github.com/expensepilot-dev/expensepilot/internal/export"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all transactions as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			txs, fromCache, err := a.fetchTransactions(cmd.Context(), api.ListFilters{})
			if err != nil {
				return err
			}
			if fromCache {
				fmt.Fprintln(os.Stderr, "warning: could not reach the server; exporting last cached data")
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := export.WriteCSV(w, txs); err != nil {
				return err
			}
			if output != "" {
				fmt.Printf("Exported %d transactions to %s\n", len(txs), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "write to a file instead of stdout")

	return cmd
}
