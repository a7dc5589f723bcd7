package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
)

var _ port.KVStore = (*LevelKV)(nil)

// LevelKV is the durable key/value backend, the default for real runs.
type LevelKV struct {
	db *leveldb.DB
}

func NewLevelKV(path string) (*LevelKV, error) {
	const op = "NewLevelKV"

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LevelKV{db}, nil
}

func (s *LevelKV) Get(key string) (string, bool, error) {
	const op = "LevelKV.Get"

	v, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return string(v), true, nil
}

func (s *LevelKV) Set(key, value string) error {
	const op = "LevelKV.Set"

	if err := s.db.Put([]byte(key), []byte(value), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *LevelKV) Delete(key string) error {
	const op = "LevelKV.Delete"

	if err := s.db.Delete([]byte(key), nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *LevelKV) Close() {
	const op = "LevelKV.Close"
	log := slog.With("op", op)

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("key/value store is closed")
}
