package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	keyringService = "taskmaster"
	tokenKey       = "api-token"
)

// DefaultKeyringConfig prefers the OS keychain and falls back to an encrypted file.
func DefaultKeyringConfig(configDir string) keyring.Config {
	return keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(configDir, "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt("taskmaster-file-key"),
		KeychainTrustApplication: true,
	}
}

// TokenStore keeps the bearer token between runs.
type TokenStore struct {
	ring keyring.Keyring
}

func OpenTokenStore(cfg keyring.Config) (*TokenStore, error) {
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &TokenStore{ring: ring}, nil
}

// Load returns the stored token, or "" when none is stored.
func (s *TokenStore) Load() (string, error) {
	item, err := s.ring.Get(tokenKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return string(item.Data), nil
}

func (s *TokenStore) Save(token string) error {
	err := s.ring.Set(keyring.Item{
		Key:         tokenKey,
		Data:        []byte(token),
		Label:       "TaskMaster API token",
		Description: "Bearer token for the TaskMaster API",
	})
	if err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *TokenStore) Clear() error {
	err := s.ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
