// Package mutate coordinates create/update/delete calls against the
// remote API and reconciles the local list afterwards. The server's
// returned object is authoritative; on any failure local state is left
// exactly as it was.
package mutate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/expensepilot-dev/expensepilot/internal/history"
	"github.com/expensepilot-dev/expensepilot/internal/log"
	"github.com/expensepilot-dev/expensepilot/internal/model"
	"github.com/expensepilot-dev/expensepilot/internal/store"
)

// Remote is the subset of the API client the coordinator needs.
type Remote interface {
	Create(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	Update(ctx context.Context, id string, tx model.Transaction) (model.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Recorder receives successful mutations for the local audit trail.
type Recorder interface {
	Record(action history.Action, tx model.Transaction) error
}

// ErrBusy rejects a resubmission while the same target is in flight.
var ErrBusy = errors.New("a submission for this transaction is already in progress")

// ValidationError lists required fields missing from a submission.
// Raised before any network call.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Validate checks the required form fields: amount, category, and
// date must be present, and the amount must be positive.
func Validate(tx model.Transaction) error {
	var missing []string
	if tx.Amount.IsZero() || tx.Amount.IsNegative() {
		missing = append(missing, "amount")
	}
	if tx.Category == "" {
		missing = append(missing, "category")
	}
	if tx.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// createTarget keys the in-flight guard for creates, which have no id yet.
const createTarget = "\x00create"

// Coordinator serializes mutations per target and applies results to
// the local store.
type Coordinator struct {
	remote  Remote
	store   *store.Store
	history Recorder // may be nil
	log     *log.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Coordinator. history may be nil to disable the audit log.
func New(remote Remote, st *store.Store, hist Recorder, logger *log.Logger) *Coordinator {
	return &Coordinator{
		remote:   remote,
		store:    st,
		history:  hist,
		log:      logger.WithComponent("mutate"),
		inFlight: make(map[string]struct{}),
	}
}

func (c *Coordinator) begin(target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[target]; busy {
		return ErrBusy
	}
	c.inFlight[target] = struct{}{}
	return nil
}

func (c *Coordinator) end(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, target)
}

// Create validates and submits a new transaction. On success the
// server's representation is appended to the local list.
func (c *Coordinator) Create(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if err := Validate(tx); err != nil {
		return model.Transaction{}, err
	}
	if err := c.begin(createTarget); err != nil {
		return model.Transaction{}, err
	}
	defer c.end(createTarget)

	created, err := c.remote.Create(ctx, tx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("creating transaction: %w", err)
	}

	c.store.Add(created)
	c.record(history.ActionCreate, created)
	return created, nil
}

// Update validates and submits a replacement for the transaction with
// the given id. On success the server's copy replaces the local one.
func (c *Coordinator) Update(ctx context.Context, id string, tx model.Transaction) (model.Transaction, error) {
	if err := Validate(tx); err != nil {
		return model.Transaction{}, err
	}
	if err := c.begin(id); err != nil {
		return model.Transaction{}, err
	}
	defer c.end(id)

	updated, err := c.remote.Update(ctx, id, tx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("updating transaction %s: %w", id, err)
	}

	if !c.store.Replace(updated) {
		// Not fetched into the local list yet; still a success.
		c.store.Add(updated)
	}
	c.record(history.ActionUpdate, updated)
	return updated, nil
}

// Delete removes the transaction with the given id, locally only after
// the server confirmed.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	if err := c.begin(id); err != nil {
		return err
	}
	defer c.end(id)

	if err := c.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting transaction %s: %w", id, err)
	}

	removed, _ := c.store.Get(id)
	c.store.Remove(id)
	if removed.ID == "" {
		removed = model.Transaction{ID: id}
	}
	c.record(history.ActionDelete, removed)
	return nil
}

// record writes to the audit log. Failures are logged, never surfaced:
// the mutation itself already succeeded.
func (c *Coordinator) record(action history.Action, tx model.Transaction) {
	if c.history == nil {
		return
	}
	if err := c.history.Record(action, tx); err != nil {
		c.log.Warn("history record failed", "action", string(action), "id", tx.ID, "err", err)
	}
}
