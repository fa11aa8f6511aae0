// Package api is the HTTP client for the ExpensePilot service: auth
// endpoints plus list/create/update/delete over transactions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expensepilot-dev/expensepilot/internal/log"
	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() (string, error)
}

// Client talks to the remote transactions API. Every request carries
// an explicit timeout and an X-Request-ID for correlation.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *log.Logger
}

// New creates a Client. baseURL has no trailing slash requirement.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     logger.WithComponent("api"),
	}
}

// ListFilters are the server-side query parameters for listing
// transactions. Empty fields are omitted from the query entirely.
type ListFilters struct {
	Type        string
	Category    string
	StartDate   string
	EndDate     string
	Description string
	SortField   string
	SortOrder   string
}

func (f ListFilters) query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("type", f.Type)
	set("category", f.Category)
	set("startDate", f.StartDate)
	set("endDate", f.EndDate)
	set("description", f.Description)
	set("sortField", f.SortField)
	set("sortOrder", f.SortOrder)
	return q
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (model.Session, error) {
	body := map[string]string{"username": username, "password": password}
	return c.authRequest(ctx, "/api/auth/login", body)
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, username, email, password string) (model.Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.authRequest(ctx, "/api/auth/register", body)
}

func (c *Client) authRequest(ctx context.Context, path string, body map[string]string) (model.Session, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body, false)
	if err != nil {
		return model.Session{}, err
	}
	defer resp.Body.Close()

	var sess model.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return model.Session{}, fmt.Errorf("parsing auth response: %w", err)
	}
	if sess.Token == "" {
		return model.Session{}, fmt.Errorf("auth response missing token")
	}
	return sess, nil
}

// List fetches transactions matching the filters. Filtering and
// sorting are the server's job; pagination happens client-side.
func (c *Client) List(ctx context.Context, filters ListFilters) ([]model.Transaction, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/expenses", filters.query(), nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ws []wireTransaction
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		return nil, fmt.Errorf("parsing transaction list: %w", err)
	}
	return decodeTransactions(ws)
}

// Create posts a new transaction and returns the server's
// representation, which is authoritative.
func (c *Client) Create(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/expense", nil, encodeTransaction(tx), true)
	if err != nil {
		return model.Transaction{}, err
	}
	defer resp.Body.Close()
	return decodeResponse(resp)
}

// Update replaces the transaction with the given id and returns the
// server's representation.
func (c *Client) Update(ctx context.Context, id string, tx model.Transaction) (model.Transaction, error) {
	w := encodeTransaction(tx)
	w.ID = id
	resp, err := c.do(ctx, http.MethodPut, "/api/expenses/"+url.PathEscape(id), nil, w, true)
	if err != nil {
		return model.Transaction{}, err
	}
	defer resp.Body.Close()
	return decodeResponse(resp)
}

// Delete removes the transaction with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/expenses/"+url.PathEscape(id), nil, nil, true)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func decodeResponse(resp *http.Response) (model.Transaction, error) {
	var w wireTransaction
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing transaction: %w", err)
	}
	return decodeTransaction(w)
}

// do builds, sends, and status-checks one request. A non-nil response
// always has a 2xx status; everything else comes back as an error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("reading session token: %w", err)
		}
		if token == "" {
			return nil, ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("request", "method", method, "url", u, "request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	// A 401 on an authenticated call means the session died. On the
	// auth endpoints themselves it just means bad credentials.
	if resp.StatusCode == http.StatusUnauthorized && authed {
		resp.Body.Close()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readErrorDetail(resp.Body)
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: detail}
	}
	return resp, nil
}

// readErrorDetail extracts a server-supplied message from an error
// body: either a JSON object with an "error"/"message" field or plain
// text. Returns "" when the body has nothing usable.
func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	return strings.TrimSpace(string(data))
}
