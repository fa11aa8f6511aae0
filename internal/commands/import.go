package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/expensepilot-dev/expensepilot/internal/api"
	"github.com/expensepilot-dev/expensepilot/internal/importer"
)

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-create transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (available: %s)",
					format, strings.Join(registry.Formats(), ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			txs, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			created := 0
			for i, tx := range txs {
				if _, err := a.coord.Create(cmd.Context(), tx); err != nil {
					if api.IsUnauthorized(err) {
						return a.sessionExpired()
					}
					return fmt.Errorf("row %d (%d created so far): %w", i+2, created, err)
				}
				created++
			}

			fmt.Printf("Imported %d transactions\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "CSV format")

	return cmd
}
