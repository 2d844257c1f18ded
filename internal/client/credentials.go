package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/workzen-dev/workzen/internal/types"
)

// CredentialStore persists the bearer token and the last-known user profile
// snapshot, the way the browser app keeps them in local storage. The snapshot
// is only a render-before-verify placeholder; FetchUser refreshes it.
type CredentialStore struct {
	mu   sync.Mutex
	path string

	token string
	user  *types.UserResponse
}

type storedCredentials struct {
	Token string              `json:"token"`
	User  *types.UserResponse `json:"user,omitempty"`
}

func NewCredentialStore(path string) (*CredentialStore, error) {
	store := &CredentialStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var stored storedCredentials
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	store.token = stored.Token
	store.user = stored.User
	return store, nil
}

func (s *CredentialStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *CredentialStore) User() *types.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *CredentialStore) Save(token string, user types.UserResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = &user
	return s.persist()
}

// Clear wipes the stored token and profile. Nothing is revoked server-side;
// the token stays valid until expiry.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}

	return nil
}

func (s *CredentialStore) persist() error {
	data, err := json.MarshalIndent(storedCredentials{Token: s.token, User: s.user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credentials dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	return nil
}
