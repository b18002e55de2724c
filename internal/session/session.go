// Package session manages the persisted API session token.
//
// The token lives in the OS keychain via 99designs/keyring, with a file
// backend fallback for headless environments. BIPONI_NOTIFY_TOKEN overrides
// whatever is stored, which keeps scripting and CI simple.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	serviceName = "biponi-notify"
	tokenKey    = "api-token"
)

// ErrNoToken indicates that no session token is available.
var ErrNoToken = errors.New("no session token: run 'biponi-notify login' or set BIPONI_NOTIFY_TOKEN")

// Store persists and retrieves the bearer token.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// keyringStore is the keyring-backed implementation.
type keyringStore struct {
	ring keyring.Keyring
}

// Open opens the session store. stateDir is used for the file backend
// fallback when no OS keychain is available.
func Open(stateDir string) (Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		FileDir:     filepath.Join(stateDir, "keyring"),
		FilePasswordFunc: func(string) (string, error) {
			// The file backend is the headless fallback; an interactive
			// password prompt would break scripted use.
			return serviceName, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return &keyringStore{ring: ring}, nil
}

// Token returns the session token, preferring the environment override.
func (s *keyringStore) Token() (string, error) {
	if tok := os.Getenv("BIPONI_NOTIFY_TOKEN"); tok != "" {
		return tok, nil
	}
	item, err := s.ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read session token: %w", err)
	}
	token := string(item.Data)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// SetToken stores the session token.
func (s *keyringStore) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("session token cannot be empty")
	}
	err := s.ring.Set(keyring.Item{
		Key:   tokenKey,
		Data:  []byte(token),
		Label: "biponi-notify API token",
	})
	if err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// ClearToken removes the stored session token.
func (s *keyringStore) ClearToken() error {
	err := s.ring.Remove(tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Static returns a store that always yields the given token. Used in tests
// and by commands that take an explicit --token flag.
func Static(token string) Store {
	return staticStore{token: token}
}

type staticStore struct {
	token string
}

func (s staticStore) Token() (string, error) {
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s staticStore) SetToken(string) error { return fmt.Errorf("static session is read-only") }
func (s staticStore) ClearToken() error     { return fmt.Errorf("static session is read-only") }
