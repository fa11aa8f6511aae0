package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// wireTransaction is the JSON shape the server speaks. Amounts are
// signed on the wire (negative for expenses, positive for income);
// internally the amount is an unsigned magnitude and Type alone carries
// direction. This codec is the only place the two conventions meet.
type wireTransaction struct {
	ID          string      `json:"id,omitempty"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
}

func encodeTransaction(t model.Transaction) wireTransaction {
	return wireTransaction{
		ID:          t.ID,
		Date:        t.Date.Format(model.DateFormat),
		Description: t.Description,
		Category:    t.Category,
		Type:        string(t.Type),
		Amount:      json.Number(t.SignedAmount().String()),
	}
}

func decodeTransaction(w wireTransaction) (model.Transaction, error) {
	typ, err := model.ParseTransactionType(w.Type)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(w.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", w.Amount, err)
	}

	date, err := time.Parse(model.DateFormat, w.Date)
	if err != nil {
		// Some server revisions return RFC 3339 timestamps.
		date, err = time.Parse(time.RFC3339, w.Date)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", w.Date, err)
		}
	}

	return model.Transaction{
		ID:          w.ID,
		Date:        date,
		Description: w.Description,
		Category:    w.Category,
		// Type is authoritative; the magnitude is taken regardless of
		// how the server signed it.
		Type:   typ,
		Amount: amount.Abs(),
	}, nil
}

func decodeTransactions(ws []wireTransaction) ([]model.Transaction, error) {
	txs := make([]model.Transaction, 0, len(ws))
	for i, w := range ws {
		tx, err := decodeTransaction(w)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
