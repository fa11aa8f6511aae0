package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/expensepilot-dev/expensepilot/internal/api"
	"github.com/expensepilot-dev/expensepilot/internal/cache"
	"github.com/expensepilot-dev/expensepilot/internal/config"
	"github.com/expensepilot-dev/expensepilot/internal/history"
	"github.com/expensepilot-dev/expensepilot/internal/log"
	"github.com/expensepilot-dev/expensepilot/internal/model"
	"github.com/expensepilot-dev/expensepilot/internal/mutate"
	"github.com/expensepilot-dev/expensepilot/internal/session"
	"github.com/expensepilot-dev/expensepilot/internal/store"
)

// app wires the client components together for one command invocation.
type app struct {
	cfg     *config.Config
	dir     string
	session *session.Store
	client  *api.Client
	state   *store.Store
	coord   *mutate.Coordinator
	logger  *log.Logger
}

func newApp() (*app, error) {
	logger := log.Default()

	cfg, dir, err := config.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(config.ResolvePath(dir, cfg.Storage.SessionFile))
	client := api.New(cfg.API.BaseURL, timeout, sess, logger)
	state := store.New()
	hist := history.NewLog(config.ResolvePath(dir, cfg.Storage.HistoryFile))

	return &app{
		cfg:     cfg,
		dir:     dir,
		session: sess,
		client:  client,
		state:   state,
		coord:   mutate.New(client, state, hist, logger),
		logger:  logger.WithComponent("cli"),
	}, nil
}

// requireAuth fails fast when no session is stored.
func (a *app) requireAuth() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in: run `expensepilot login` first")
	}
	return nil
}

// sessionExpired clears the dead session and tells the user what to do.
func (a *app) sessionExpired() error {
	if err := a.session.Logout(); err != nil {
		a.logger.Warn("clearing expired session failed", "err", err)
	}
	return fmt.Errorf("session expired or invalid: run `expensepilot login` again")
}

// fetchTransactions loads the list from the server and installs it in
// local state. When the API cannot be reached the last cached list is
// served instead; fromCache reports which happened. A 401 clears the
// session and fails.
func (a *app) fetchTransactions(ctx context.Context, filters api.ListFilters) (txs []model.Transaction, fromCache bool, err error) {
	gen := a.state.BeginFetch()

	txs, err = a.client.List(ctx, filters)
	if err != nil {
		if api.IsUnauthorized(err) {
			return nil, false, a.sessionExpired()
		}
		a.logger.Info("fetch failed, falling back to cached data", "err", err)
		cached, fetchedAt, cerr := a.readCache()
		if cerr != nil {
			a.logger.Warn("cache read failed", "err", cerr)
			return nil, true, nil
		}
		if !fetchedAt.IsZero() {
			a.state.ApplyFetch(gen, cached)
		}
		return cached, true, nil
	}

	a.state.ApplyFetch(gen, txs)
	a.writeCache(txs)
	return txs, false, nil
}

func (a *app) cachePath() string {
	return config.ResolvePath(a.dir, a.cfg.Storage.CacheFile)
}

func (a *app) readCache() ([]model.Transaction, time.Time, error) {
	c, err := cache.Open(a.cachePath())
	if err != nil {
		return nil, time.Time{}, err
	}
	defer c.Close()
	return c.Get()
}

// writeCache is best effort; a broken cache never fails a fetch.
func (a *app) writeCache(txs []model.Transaction) {
	c, err := cache.Open(a.cachePath())
	if err != nil {
		a.logger.Warn("cache open failed", "err", err)
		return
	}
	defer c.Close()
	if err := c.Put(txs); err != nil {
		a.logger.Warn("cache write failed", "err", err)
	}
}
