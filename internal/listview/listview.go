// Package listview turns the full transaction list plus the user's
// filter/sort/page selections into the visible slice of rows. The
// server handles filtering and sorting for live fetches; these
// functions cover cached/offline data and always handle pagination.
package listview

import (
	"sort"
	"strings"
	"time"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// SortField is a sortable column.
type SortField string

const (
	SortDate        SortField = "date"
	SortAmount      SortField = "amount"
	SortDescription SortField = "description"
)

// SortOrder is a sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Sort is the selected sort field and direction.
type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is newest first.
func DefaultSort() Sort {
	return Sort{Field: SortDate, Order: OrderDesc}
}

// Toggle advances the sort state for a column selection: a new field
// starts at desc, the same field flips desc -> asc, and a third
// selection reverts to the default date/desc.
func (s Sort) Toggle(field SortField) Sort {
	if s.Field != field {
		return Sort{Field: field, Order: OrderDesc}
	}
	if s.Order == OrderDesc {
		return Sort{Field: field, Order: OrderAsc}
	}
	return DefaultSort()
}

// Query is everything the user selected for the list view.
type Query struct {
	Search    string
	Category  string // "all" or exact match
	Type      string // "all", "Income", or "Expense"
	StartDate time.Time
	EndDate   time.Time
	Sort      Sort
	Page      int
	PageSize  int
}

// Page is the visible slice plus pagination metadata.
type Page struct {
	Rows        []model.Transaction
	TotalCount  int
	TotalPages  int
	CurrentPage int
}

// Apply runs filter, sort, and pagination in order.
func Apply(txs []model.Transaction, q Query) Page {
	filtered := Filter(txs, q)
	sorted := SortTransactions(filtered, q.Sort)
	return Paginate(sorted, q.Page, q.PageSize)
}

// Filter keeps transactions matching the query. An empty search
// matches everything; otherwise a case-insensitive substring match on
// description or category is required. Category and type filters pass
// on "all" or empty. Date bounds are inclusive.
func Filter(txs []model.Transaction, q Query) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if matches(tx, q) {
			out = append(out, tx)
		}
	}
	return out
}

func matches(tx model.Transaction, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(tx.Description), needle) &&
			!strings.Contains(strings.ToLower(tx.Category), needle) {
			return false
		}
	}
	if q.Category != "" && q.Category != "all" && tx.Category != q.Category {
		return false
	}
	if q.Type != "" && q.Type != "all" && string(tx.Type) != q.Type {
		return false
	}
	if !q.StartDate.IsZero() && tx.Date.Before(q.StartDate) {
		return false
	}
	if !q.EndDate.IsZero() && tx.Date.After(q.EndDate) {
		return false
	}
	return true
}

// SortTransactions returns a sorted copy. Amount ordering uses the
// signed value, so large expenses sort below income.
func SortTransactions(txs []model.Transaction, s Sort) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)

	var less func(a, b model.Transaction) bool
	switch s.Field {
	case SortAmount:
		less = func(a, b model.Transaction) bool {
			return a.SignedAmount().LessThan(b.SignedAmount())
		}
	case SortDescription:
		less = func(a, b model.Transaction) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	default:
		less = func(a, b model.Transaction) bool {
			return a.Date.Before(b.Date)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if s.Order == OrderDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Paginate clamps page into [1, totalPages] and slices out the visible
// rows. Zero or negative pageSize falls back to 10.
func Paginate(txs []model.Transaction, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 10
	}
	count := len(txs)
	totalPages := (count + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > count {
		start = count
	}
	if end > count {
		end = count
	}

	return Page{
		Rows:        txs[start:end],
		TotalCount:  count,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
