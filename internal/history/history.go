// Package history keeps a local CSV audit trail of every mutation the
// client successfully applied, so there is a record of what was sent
// even after the remote list changes.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// Action is the kind of mutation recorded.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one row in history.csv.
type Entry struct {
	Timestamp     time.Time
	Action        Action
	TransactionID string
	Type          string
	Category      string
	Amount        string
	Description   string
}

// Header is the CSV header for history.csv.
const Header = "timestamp,action,transaction_id,type,category,amount,description"

const (
	numFields   = 7
	colTime     = 0
	colAction   = 1
	colTxID     = 2
	colType     = 3
	colCategory = 4
	colAmount   = 5
	colDesc     = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = string(e.Action)
	row[colTxID] = e.TransactionID
	row[colType] = e.Type
	row[colCategory] = e.Category
	row[colAmount] = e.Amount
	row[colDesc] = e.Description
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	return Entry{
		Timestamp:     ts,
		Action:        Action(record[colAction]),
		TransactionID: record[colTxID],
		Type:          record[colType],
		Category:      record[colCategory],
		Amount:        record[colAmount],
		Description:   record[colDesc],
	}, nil
}

// Log appends entries to a history file.
type Log struct {
	path string
	now  func() time.Time
}

// NewLog creates a Log writing to path.
func NewLog(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Record appends one mutation for a transaction.
func (l *Log) Record(action Action, tx model.Transaction) error {
	return l.Append([]Entry{{
		Timestamp:     l.now(),
		Action:        action,
		TransactionID: tx.ID,
		Type:          string(tx.Type),
		Category:      tx.Category,
		Amount:        tx.Amount.String(),
		Description:   tx.Description,
	}})
}

// Append writes entries to the history file, creating it and the
// header if needed.
func (l *Log) Append(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries in the history file, oldest first. A
// missing file yields an empty list.
func (l *Log) Read() ([]Entry, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
