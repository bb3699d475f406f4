package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	apperrors "routemaster/internal/pkg/errors"
)

// Store holds the opaque session token issued by the sync server.
// The token is kept on disk so the login gate survives a restart, and
// access is mutex-serialized: login, logout, and the sync client's
// auth-failure side effect are the only writers.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
}

// NewStore loads any previously persisted token from path.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, apperrors.Storage("could not read session file", err)
	}
	s.token = strings.TrimSpace(string(raw))
	return s, nil
}

// Set persists a new session token.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperrors.Storage("could not create session directory", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return apperrors.Storage("could not write session file", err)
	}
	s.token = token
	return nil
}

// Token returns the current token, or false when no session exists.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Clear destroys the session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Storage("could not remove session file", err)
	}
	return nil
}
