package storage

import (
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KVStore = (*MemoryKV)(nil)

// MemoryKV is the in-memory key/value backend, used in tests and for
// throwaway runs with no persistence path configured.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (s *MemoryKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

var _ port.RecordStore = (*MemoryRecords)(nil)

type record struct {
	value     string
	expiresAt time.Time
}

// MemoryRecords is the expiring-record store backing the session
// identity. Expired records are dropped lazily on read.
type MemoryRecords struct {
	mu   sync.Mutex
	data map[string]record
	now  func() time.Time
}

func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{data: make(map[string]record), now: time.Now}
}

func (s *MemoryRecords) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data[name]
	if !ok {
		return "", false
	}
	if s.now().After(r.expiresAt) {
		delete(s.data, name)
		return "", false
	}
	return r.value, true
}

func (s *MemoryRecords) Set(name, value string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = record{value: value, expiresAt: expiresAt}
}

func (s *MemoryRecords) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
}
