package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// GenericParser reads the same column layout the export command
// writes: date, description, category, type, amount. An id column is
// tolerated and ignored (the server assigns ids). When the type column
// is empty, the sign of the amount decides.
type GenericParser struct{}

// Format implements Parser.
func (p *GenericParser) Format() string { return "generic" }

// Parse implements Parser.
func (p *GenericParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := parseRow(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

type columns struct {
	date, description, category, typ, amount int
}

func mapHeader(header []string) (columns, error) {
	cols := columns{date: -1, description: -1, category: -1, typ: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "description":
			cols.description = i
		case "category":
			cols.category = i
		case "type":
			cols.typ = i
		case "amount":
			cols.amount = i
		}
	}
	if cols.date == -1 || cols.category == -1 || cols.amount == -1 {
		return columns{}, fmt.Errorf("header must include date, category, and amount columns")
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseRow(cols columns, rec []string) (model.Transaction, error) {
	date, err := time.Parse(model.DateFormat, field(rec, cols.date))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date: %w", err)
	}

	amount, err := decimal.NewFromString(field(rec, cols.amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount: %w", err)
	}

	var typ model.TransactionType
	if raw := field(rec, cols.typ); raw != "" {
		typ, err = model.ParseTransactionType(raw)
		if err != nil {
			return model.Transaction{}, err
		}
	} else if amount.IsNegative() {
		typ = model.TypeExpense
	} else {
		typ = model.TypeIncome
	}

	return model.Transaction{
		Date:        date,
		Description: field(rec, cols.description),
		Category:    field(rec, cols.category),
		Type:        typ,
		Amount:      amount.Abs(),
	}, nil
}
