// Package export writes a transaction list as CSV for use outside the
// dashboard. Amounts are exported signed, matching the wire format.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// Header is the CSV header for exported transactions.
const Header = "id,date,description,category,type,amount"

const (
	numFields   = 6
	colID       = 0
	colDate     = 1
	colDesc     = 2
	colCategory = 3
	colType     = 4
	colAmount   = 5
)

// MarshalTransaction converts a transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colDate] = t.DateString()
	row[colDesc] = t.Description
	row[colCategory] = t.Category
	row[colType] = string(t.Type)
	row[colAmount] = t.SignedAmount().String()
	return row
}

// WriteCSV writes transactions (including header) to w.
func WriteCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
