// Package authtoken owns the bearer token used against the tenant API.
//
// The token is a single opaque string persisted in a local file, the
// process-wide analog of the landing page's localStorage. The store is the
// sole owner; every call site borrows through it. There is no expiry
// tracking: a 401/403 from any authenticated endpoint is the only expiry
// signal, and the caller reacts by prompting for re-authentication.
package authtoken

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrEmptyToken is returned when a token is empty after sanitizing.
// Saving an empty token is a validation failure, not a silent no-op.
var ErrEmptyToken = errors.New("authtoken: token trống sau khi làm sạch")

// Store is the single owner of the persisted bearer token.
type Store struct {
	path string

	mu           sync.RWMutex
	token        string
	refreshToken string
	loaded       bool
}

// storedTokens is the on-disk shape.
type storedTokens struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// NewStore creates a store backed by the given file. The file is read
// lazily on first access; a missing file just means no token yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save sanitizes and persists a token. The raw value is trimmed and ASCII /
// Latin-1 control characters are stripped; an empty result is rejected.
func (s *Store) Save(raw string) error {
	clean := Sanitize(raw)
	if clean == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	s.token = clean
	return s.persistLocked()
}

// SaveRefresh persists a refresh token alongside the access token.
func (s *Store) SaveRefresh(raw string) error {
	clean := Sanitize(raw)
	if clean == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	s.refreshToken = clean
	return s.persistLocked()
}

// Token returns the stored token, or "" when none exists.
func (s *Store) Token() string {
	s.mu.RLock()
	if s.loaded {
		token := s.token
		s.mu.RUnlock()
		return token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.token
}

// RefreshToken returns the stored refresh token, or "" when none exists.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.refreshToken
}

// Clear removes both tokens from memory and disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refreshToken = ""
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("authtoken: remove %s: %w", s.path, err)
	}
	return nil
}

// IsAuthenticated reports whether a token is stored. It says nothing about
// validity; only the API can tell, via 401/403.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// ensureLoadedLocked reads the token file once. Callers hold the write lock.
func (s *Store) ensureLoadedLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var stored storedTokens
	if json.Unmarshal(data, &stored) != nil {
		return
	}
	s.token = Sanitize(stored.Token)
	s.refreshToken = Sanitize(stored.RefreshToken)
}

// persistLocked writes the current tokens to disk. Callers hold the write lock.
func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("authtoken: mkdir: %w", err)
	}
	data, err := json.Marshal(storedTokens{Token: s.token, RefreshToken: s.refreshToken})
	if err != nil {
		return fmt.Errorf("authtoken: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("authtoken: write %s: %w", s.path, err)
	}
	return nil
}

// Sanitize trims a raw token and strips ASCII and Latin-1 control
// characters (U+0000..U+001F and U+007F..U+009F).
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	return strings.Map(func(r rune) rune {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, trimmed)
}
