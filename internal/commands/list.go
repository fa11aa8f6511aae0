package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/expensepilot-dev/expensepilot/internal/api"
	"github.com/expensepilot-dev/expensepilot/internal/listview"
	"github.com/expensepilot-dev/expensepilot/internal/model"
)

func newListCommand() *cobra.Command {
	var (
		typeFilter string
		category   string
		startDate  string
		endDate    string
		search     string
		sortField  string
		sortOrder  string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with filters, sorting, and paging",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			sort, err := parseSort(sortField, sortOrder)
			if err != nil {
				return err
			}
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			if pageSize == 0 {
				pageSize = a.cfg.Display.PageSize
			}

			// The server filters and sorts; pagination stays local.
			txs, fromCache, err := a.fetchTransactions(cmd.Context(), api.ListFilters{
				Type:        normalizeAll(typeFilter),
				Category:    normalizeAll(category),
				StartDate:   startDate,
				EndDate:     endDate,
				Description: search,
				SortField:   string(sort.Field),
				SortOrder:   string(sort.Order),
			})
			if err != nil {
				return err
			}

			var p listview.Page
			if fromCache {
				fmt.Fprintln(os.Stderr, "warning: could not reach the server; filtering cached data locally")
				p = listview.Apply(txs, listview.Query{
					Search:    search,
					Category:  category,
					Type:      typeFilter,
					StartDate: start,
					EndDate:   end,
					Sort:      sort,
					Page:      page,
					PageSize:  pageSize,
				})
			} else {
				p = listview.Paginate(txs, page, pageSize)
			}

			out := cmd.OutOrStdout()
			renderTransactions(out, a.cfg.Display.Currency, p.Rows)
			renderPageFooter(out, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "all", "filter by type (Income, Expense, all)")
	cmd.Flags().StringVar(&category, "category", "all", "filter by category")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&search, "search", "", "search term for description")
	cmd.Flags().StringVar(&sortField, "sort", "date", "sort field (date, amount, description)")
	cmd.Flags().StringVar(&sortOrder, "order", "desc", "sort order (asc, desc)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (default from config)")

	return cmd
}

// normalizeAll maps the CLI's "all" sentinel to an absent filter so it
// never reaches the query string.
func normalizeAll(v string) string {
	if v == "all" {
		return ""
	}
	return v
}

func parseSort(field, order string) (listview.Sort, error) {
	var s listview.Sort
	switch listview.SortField(field) {
	case listview.SortDate, listview.SortAmount, listview.SortDescription:
		s.Field = listview.SortField(field)
	default:
		return s, fmt.Errorf("invalid sort field %q (want date, amount, or description)", field)
	}
	switch listview.SortOrder(order) {
	case listview.OrderAsc, listview.OrderDesc:
		s.Order = listview.SortOrder(order)
	default:
		return s, fmt.Errorf("invalid sort order %q (want asc or desc)", order)
	}
	return s, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	var s, e time.Time
	var err error
	if start != "" {
		s, err = time.Parse(model.DateFormat, start)
		if err != nil {
			return s, e, fmt.Errorf("invalid start date %q: %w", start, err)
		}
	}
	if end != "" {
		e, err = time.Parse(model.DateFormat, end)
		if err != nil {
			return s, e, fmt.Errorf("invalid end date %q: %w", end, err)
		}
	}
	if !s.IsZero() && !e.IsZero() && e.Before(s) {
		return s, e, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return s, e, nil
}
