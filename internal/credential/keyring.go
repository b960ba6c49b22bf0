package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "wms"

// Fixed entry names for the persisted session. The two entries are
// always written and cleared together.
const (
	tokenKey = "auth-token"
	userKey  = "auth-user"
)

// ErrNotFound is returned by Load when no session is persisted.
var ErrNotFound = errors.New("no persisted session")

// Store persists the authenticated session (bearer token plus the
// serialized user record) across process restarts.
type Store interface {
	// Save writes both entries. Either both end up stored or an error
	// is returned.
	Save(token, user string) error

	// Load returns the persisted token and user. ErrNotFound when
	// either entry is absent.
	Load() (token, user string, err error)

	// Clear removes both entries. Clearing an empty store is not an
	// error.
	Clear() error
}

// KeyringStore is a Store backed by the system keyring.
type KeyringStore struct {
	fileDir string
}

// NewKeyringStore creates a keyring-backed store. fileDir is used by the
// encrypted-file fallback backend on systems without a native keyring.
func NewKeyringStore(fileDir string) *KeyringStore {
	return &KeyringStore{fileDir: fileDir}
}

// open returns a configured keyring instance.
func (s *KeyringStore) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  s.fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("wms-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Save writes the token and serialized user under their fixed keys.
func (s *KeyringStore) Save(token, user string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: tokenKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: userKey, Data: []byte(user)}); err != nil {
		// Keep the invariant that the two entries exist together.
		_ = ring.Remove(tokenKey)
		return fmt.Errorf("storing user: %w", err)
	}

	return nil
}

// Load returns the persisted session, or ErrNotFound when either entry
// is missing.
func (s *KeyringStore) Load() (string, string, error) {
	ring, err := s.open()
	if err != nil {
		return "", "", err
	}

	tokenItem, err := ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("reading token: %w", err)
	}

	userItem, err := ring.Get(userKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("reading user: %w", err)
	}

	return string(tokenItem.Data), string(userItem.Data), nil
}

// Clear removes both entries.
func (s *KeyringStore) Clear() error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	for _, key := range []string{tokenKey, userKey} {
		if err := ring.Remove(key); err != nil &&
			!errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}

	return nil
}
