// Package session persists the bearer token and user profile between
// runs, standing in for the browser-local storage the web client uses.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/expensepilot-dev/expensepilot/internal/model"
)

// Store reads and writes the session file. A missing file means no
// session; every write rewrites the whole file so token and user are
// always observed together.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

type sessionFile struct {
	Token string      `json:"auth_token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

func (s *Store) load() (sessionFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return sessionFile{}, nil
	}
	if err != nil {
		return sessionFile{}, fmt.Errorf("reading session file: %w", err)
	}
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return sessionFile{}, fmt.Errorf("parsing session file: %w", err)
	}
	return f, nil
}

func (s *Store) save(f sessionFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// SetToken stores the bearer token.
func (s *Store) SetToken(token string) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.Token = token
	return s.save(f)
}

// Token returns the stored bearer token, or "" when absent.
func (s *Store) Token() (string, error) {
	f, err := s.load()
	if err != nil {
		return "", err
	}
	return f.Token, nil
}

// RemoveToken deletes the stored token, keeping the user.
func (s *Store) RemoveToken() error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.Token = ""
	return s.save(f)
}

// SetUser stores the user profile.
func (s *Store) SetUser(u model.User) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.User = &u
	return s.save(f)
}

// User returns the stored user, or (zero, false) when absent.
func (s *Store) User() (model.User, bool, error) {
	f, err := s.load()
	if err != nil {
		return model.User{}, false, err
	}
	if f.User == nil {
		return model.User{}, false, nil
	}
	return *f.User, true, nil
}

// RemoveUser deletes the stored user, keeping the token.
func (s *Store) RemoveUser() error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.User = nil
	return s.save(f)
}

// Set stores token and user from a login or register response in a
// single write.
func (s *Store) Set(sess model.Session) error {
	return s.save(sessionFile{Token: sess.Token, User: &sess.User})
}

// IsAuthenticated reports whether a token is present. I/O errors count
// as unauthenticated: the caller will be sent to login either way.
func (s *Store) IsAuthenticated() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// Logout clears token and user together. Subsequent reads see neither.
func (s *Store) Logout() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
