// Package storage is the persistence adapter: typed get/set for users,
// carts and the session identity over two collaborator stores, plus the
// store backends themselves.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	usersKey       = "users"
	cartKeyPrefix  = "cart:"
	sessionRecName = "loggedInUser"
)

var _ port.UserDirectory = (*UserDirectory)(nil)

// UserDirectory persists the user mapping as one JSON object keyed
// by email.
type UserDirectory struct {
	kv port.KVStore
}

func NewUserDirectory(kv port.KVStore) *UserDirectory {
	return &UserDirectory{kv}
}

func (d *UserDirectory) Users() (map[string]domain.UserRecord, error) {
	const op = "UserDirectory.Users"

	raw, ok, err := d.kv.Get(usersKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users := make(map[string]domain.UserRecord)
	if !ok {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (d *UserDirectory) SaveUsers(users map[string]domain.UserRecord) error {
	const op = "UserDirectory.SaveUsers"

	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := d.kv.Set(usersKey, string(b)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

var _ port.CartStore = (*CartStore)(nil)

// CartStore persists each identity's cart as a JSON array under its
// own key, so carts are never shared between identities.
type CartStore struct {
	kv port.KVStore
}

func NewCartStore(kv port.KVStore) *CartStore {
	return &CartStore{kv}
}

func (s *CartStore) LoadCart(identity string) ([]domain.CartEntry, error) {
	const op = "CartStore.LoadCart"

	raw, ok, err := s.kv.Get(cartKeyPrefix + identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, nil
	}
	var entries []domain.CartEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (s *CartStore) SaveCart(
	identity string, entries []domain.CartEntry,
) error {
	const op = "CartStore.SaveCart"

	if entries == nil {
		entries = []domain.CartEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Set(cartKeyPrefix+identity, string(b)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

var _ port.SessionStore = (*SessionStore)(nil)

// SessionStore keeps the session identity in the expiring-record
// collaborator, the cookie analog.
type SessionStore struct {
	records port.RecordStore
}

func NewSessionStore(records port.RecordStore) *SessionStore {
	return &SessionStore{records}
}

func (s *SessionStore) Identity() (string, bool) {
	return s.records.Get(sessionRecName)
}

func (s *SessionStore) SetIdentity(identity string, expiresAt time.Time) {
	s.records.Set(sessionRecName, identity, expiresAt)
}

func (s *SessionStore) ClearIdentity() {
	s.records.Delete(sessionRecName)
}
