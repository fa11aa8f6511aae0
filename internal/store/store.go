// Package store holds the in-memory transaction list between fetch and
// render. Mutations are atomic: readers never observe a partial update.
package store

import (
	"sync"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// Store is the mutable local copy of the remote transaction list.
//
// Fetches are tagged with a generation: a response fetched under an
// older generation than the latest BeginFetch call is stale and gets
// discarded, so rapid filter changes cannot apply out of order.
type Store struct {
	mu       sync.Mutex
	txs      []model.Transaction
	fetchGen uint64
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// BeginFetch marks the start of a fetch and returns its generation.
func (s *Store) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchGen++
	return s.fetchGen
}

// ApplyFetch installs a fetched list if gen is still the latest.
// Returns false when the response was stale and discarded.
func (s *Store) ApplyFetch(gen uint64, txs []model.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return false
	}
	s.txs = make([]model.Transaction, len(txs))
	copy(s.txs, txs)
	return true
}

// Transactions returns a copy of the current list.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Len returns the current list length.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// Add appends a transaction, typically the server's representation of
// a successful create.
func (s *Store) Add(tx model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
}

// Replace swaps the item with the matching ID for the given
// transaction. Returns false when no item matched.
func (s *Store) Replace(tx model.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == tx.ID {
			s.txs[i] = tx
			return true
		}
	}
	return false
}

// Remove deletes the item with the given ID. Returns false when no
// item matched.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the transaction with the given ID.
func (s *Store) Get(id string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}
