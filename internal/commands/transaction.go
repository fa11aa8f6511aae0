package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/expensepilot-dev/expensepilot/internal/api"
	"github.com/expensepilot-dev/expensepilot/internal/categories"
	"github.com/expensepilot-dev/expensepilot/internal/model"
)

func newAddCommand() *cobra.Command {
	var (
		typeFlag    string
		amount      string
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			tx, err := buildTransaction(typeFlag, amount, category, date, description)
			if err != nil {
				return err
			}

			created, err := a.coord.Create(cmd.Context(), tx)
			if err != nil {
				if api.IsUnauthorized(err) {
					return a.sessionExpired()
				}
				return err
			}

			fmt.Printf("Added %s transaction %s: %s %s\n",
				created.Type, created.ID, signedMoney(a.cfg.Display.Currency, created), created.Category)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "Expense", "transaction type (Income or Expense)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, always positive (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&category, "category", "", "category (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&description, "description", "", "free-text note")

	return cmd
}

func newEditCommand() *cobra.Command {
	var (
		typeFlag    string
		amount      string
		category    string
		date        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			id := args[0]

			// The server wants the full object on PUT, so start from
			// the current remote copy and lay the edited fields on top.
			_, fromCache, err := a.fetchTransactions(cmd.Context(), api.ListFilters{})
			if err != nil {
				return err
			}
			if fromCache {
				return fmt.Errorf("cannot edit while the server is unreachable")
			}

			current, ok := a.state.Get(id)
			if !ok {
				return fmt.Errorf("no transaction with id %s", id)
			}

			edited, err := applyEdits(current, typeFlag, amount, category, date, description, cmd.Flags().Changed("description"))
			if err != nil {
				return err
			}

			updated, err := a.coord.Update(cmd.Context(), id, edited)
			if err != nil {
				if api.IsUnauthorized(err) {
					return a.sessionExpired()
				}
				return err
			}

			fmt.Printf("Updated %s: %s %s on %s\n",
				updated.ID, signedMoney(a.cfg.Display.Currency, updated), updated.Category, updated.DateString())
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "transaction type (Income or Expense)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, always positive")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&description, "description", "", "free-text note")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			id := args[0]
			if !yes && !confirm(fmt.Sprintf("Delete transaction %s?", id)) {
				fmt.Println("Aborted")
				return nil
			}

			if err := a.coord.Delete(cmd.Context(), id); err != nil {
				if api.IsUnauthorized(err) {
					return a.sessionExpired()
				}
				return err
			}

			fmt.Printf("Deleted %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}

func buildTransaction(typeFlag, amount, category, date, description string) (model.Transaction, error) {
	typ, err := model.ParseTransactionType(typeFlag)
	if err != nil {
		return model.Transaction{}, err
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if !amt.IsPositive() {
		return model.Transaction{}, fmt.Errorf("amount must be positive, got %s", amount)
	}

	d, err := time.Parse(model.DateFormat, date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
	}

	if !categories.IsValid(typ, category) {
		return model.Transaction{}, fmt.Errorf("invalid %s category %q (valid: %s)",
			strings.ToLower(string(typ)), category, strings.Join(categories.ForType(typ), ", "))
	}

	return model.Transaction{
		Date:        d,
		Description: description,
		Category:    category,
		Type:        typ,
		Amount:      amt,
	}, nil
}

// applyEdits overlays the provided flags onto the current transaction.
// Unset flags keep the current values; description is special-cased so
// it can be cleared with an explicit empty flag.
func applyEdits(current model.Transaction, typeFlag, amount, category, date, description string, descriptionSet bool) (model.Transaction, error) {
	edited := current

	if typeFlag != "" {
		typ, err := model.ParseTransactionType(typeFlag)
		if err != nil {
			return model.Transaction{}, err
		}
		edited.Type = typ
	}
	if amount != "" {
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", amount, err)
		}
		if !amt.IsPositive() {
			return model.Transaction{}, fmt.Errorf("amount must be positive, got %s", amount)
		}
		edited.Amount = amt
	}
	if category != "" {
		edited.Category = category
	}
	if date != "" {
		d, err := time.Parse(model.DateFormat, date)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
		}
		edited.Date = d
	}
	if descriptionSet {
		edited.Description = description
	}

	if !categories.IsValid(edited.Type, edited.Category) {
		return model.Transaction{}, fmt.Errorf("invalid %s category %q (valid: %s)",
			strings.ToLower(string(edited.Type)), edited.Category, strings.Join(categories.ForType(edited.Type), ", "))
	}
	return edited, nil
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
