package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lcarvalho/academico/internal/pkg/auth"
)

// Store persists the credential token and username between runs, playing the
// role browser storage plays for the web client. The two keys mirror the
// browser keys: "auth" holds the encoded credential, "username" the display name.
type Store struct {
	path string
}

type state struct {
	Auth     string `json:"auth,omitempty"`
	Username string `json:"username,omitempty"`
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "academico", "session.json"), nil
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Login encodes the credential pair into the transport token and persists it
// together with the username. It never contacts the server: verification only
// happens when a later request is rejected.
func (s *Store) Login(username, password string) (string, error) {
	token := auth.EncodeBasicCredentials(username, password)

	if err := s.write(state{Auth: token, Username: username}); err != nil {
		return "", err
	}

	return token, nil
}

// Logout clears the persisted token and username.
func (s *Store) Logout() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a token is currently persisted. This is a
// presence check only: a stale token still counts until the server rejects it.
func (s *Store) IsAuthenticated() bool {
	return s.read().Auth != ""
}

// Token returns the persisted credential token, or "" when logged out.
func (s *Store) Token() string {
	return s.read().Auth
}

// Username returns the persisted display name, or "" when logged out.
func (s *Store) Username() string {
	return s.read().Username
}

func (s *Store) read() state {
	var st state

	data, err := os.ReadFile(s.path)
	if err != nil {
		return st
	}

	// A corrupt session file behaves like no session at all
	_ = json.Unmarshal(data, &st)
	return st
}

func (s *Store) write(st state) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return nil
}
