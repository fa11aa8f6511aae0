package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

func tx(id string) model.Transaction {
	return model.Transaction{ID: id, Type: model.TypeExpense, Amount: decimal.New(1, 0)}
}

func TestApplyFetchLatestWins(t *testing.T) {
	s := New()

	gen1 := s.BeginFetch()
	gen2 := s.BeginFetch()

	// The later fetch's response lands first.
	require.True(t, s.ApplyFetch(gen2, []model.Transaction{tx("from-gen2")}))

	// The earlier fetch's response is stale and must be discarded.
	assert.False(t, s.ApplyFetch(gen1, []model.Transaction{tx("from-gen1")}))

	got := s.Transactions()
	require.Len(t, got, 1)
	assert.Equal(t, "from-gen2", got[0].ID)
}

func TestApplyFetchCopiesInput(t *testing.T) {
	s := New()
	gen := s.BeginFetch()
	in := []model.Transaction{tx("a")}
	require.True(t, s.ApplyFetch(gen, in))

	in[0].ID = "mutated"
	got := s.Transactions()
	assert.Equal(t, "a", got[0].ID)
}

func TestTransactionsReturnsCopy(t *testing.T) {
	s := New()
	gen := s.BeginFetch()
	require.True(t, s.ApplyFetch(gen, []model.Transaction{tx("a")}))

	got := s.Transactions()
	got[0].ID = "mutated"
	assert.Equal(t, "a", s.Transactions()[0].ID)
}

func TestAddReplaceRemove(t *testing.T) {
	s := New()
	s.Add(tx("a"))
	s.Add(tx("b"))
	assert.Equal(t, 2, s.Len())

	updated := tx("b")
	updated.Description = "server copy"
	assert.True(t, s.Replace(updated))

	got, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, "server copy", got.Description)

	assert.False(t, s.Replace(tx("missing")))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get("a")
	assert.False(t, ok)
}
