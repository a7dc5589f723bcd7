package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/spf13/afero"
)

var _ port.KVStore = (*FileKV)(nil)

// FileKV keeps the whole key/value mapping in one JSON document on an
// afero filesystem. Every Set rewrites the document, which keeps the
// store consistent after a crash at the cost of write amplification
// that is irrelevant at this data size.
type FileKV struct {
	fs   afero.Fs
	path string
}

func NewFileKV(fsys afero.Fs, path string) *FileKV {
	return &FileKV{fs: fsys, path: path}
}

func (s *FileKV) Get(key string) (string, bool, error) {
	const op = "FileKV.Get"

	data, err := s.read()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *FileKV) Set(key, value string) error {
	const op = "FileKV.Set"

	data, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data[key] = value
	if err := s.write(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileKV) Delete(key string) error {
	const op = "FileKV.Delete"

	data, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	delete(data, key)
	if err := s.write(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *FileKV) read() (map[string]string, error) {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	data := make(map[string]string)
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileKV) write(data map[string]string) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.path, b, 0o600)
}
