// Package cache persists the last successfully fetched transaction
// list so the dashboard can fall back to known data when the API is
// unreachable. Nothing here is authoritative; a successful fetch
// always overwrites it wholesale.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	// Import sqlite driver
	_ "modernc.org/sqlite"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// Store wraps the sqlite cache database.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the cache database at path and runs
// migrations. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging cache db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			date TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			type TEXT NOT NULL,
			amount TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migrating cache db: %w", err)
		}
	}
	return nil
}

// Put replaces the cached list atomically and stamps the fetch time.
func (s *Store) Put(txs []model.Transaction) error {
	dbTx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting cache write: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	for _, tx := range txs {
		_, err := dbTx.Exec(
			`INSERT INTO transactions (id, date, description, category, type, amount) VALUES (?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.DateString(), tx.Description, tx.Category, string(tx.Type), tx.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("caching transaction %s: %w", tx.ID, err)
		}
	}
	_, err = dbTx.Exec(
		`INSERT INTO meta (key, value) VALUES ('fetched_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("stamping cache: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing cache write: %w", err)
	}
	return nil
}

// Get returns the cached list in fetch order plus the fetch time. An
// empty cache returns a nil list and zero time.
func (s *Store) Get() ([]model.Transaction, time.Time, error) {
	rows, err := s.conn.Query(
		`SELECT id, date, description, category, type, amount FROM transactions ORDER BY position`,
	)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading cache: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var id, date, description, category, typ, amount string
		if err := rows.Scan(&id, &date, &description, &category, &typ, &amount); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning cached transaction: %w", err)
		}
		tx, err := rehydrate(id, date, description, category, typ, amount)
		if err != nil {
			return nil, time.Time{}, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("reading cache rows: %w", err)
	}

	fetchedAt, err := s.fetchedAt()
	if err != nil {
		return nil, time.Time{}, err
	}
	return txs, fetchedAt, nil
}

func rehydrate(id, date, description, category, typ, amount string) (model.Transaction, error) {
	parsedType, err := model.ParseTransactionType(typ)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("cached transaction %s: %w", id, err)
	}
	parsedDate, err := time.Parse(model.DateFormat, date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("cached transaction %s: %w", id, err)
	}
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("cached transaction %s: %w", id, err)
	}
	return model.Transaction{
		ID:          id,
		Date:        parsedDate,
		Description: description,
		Category:    category,
		Type:        parsedType,
		Amount:      parsedAmount,
	}, nil
}

func (s *Store) fetchedAt() (time.Time, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM meta WHERE key = 'fetched_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading cache stamp: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing cache stamp: %w", err)
	}
	return ts, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}
