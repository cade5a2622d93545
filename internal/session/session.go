// Package session persists the user token between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoSession is returned by Load when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

// Session is the persisted login state.
type Session struct {
	UserToken string     `json:"user_token"`
	Expiry    *time.Time `json:"session_expiry,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Valid reports whether the session has a token that has not expired at now.
func (s Session) Valid(now time.Time) bool {
	if s.UserToken == "" {
		return false
	}
	return s.Expiry == nil || now.Before(*s.Expiry)
}

// Store reads and writes a session file.
type Store struct {
	path string
}

// DefaultPath returns ~/.config/eeroctl/session.json (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "eeroctl", "session.json"), nil
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the saved session. A missing or empty file yields ErrNoSession.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return Session{}, ErrNoSession
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("parse session %s: %w", s.path, err)
	}
	if sess.UserToken == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Save writes the session with owner-only permissions.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write session %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the saved session. Clearing a missing session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session %s: %w", s.path, err)
	}
	return nil
}
