// Package file — хранилище в JSON-документе на диске (driver=file).
//
// Весь документ держится в памяти и целиком переписывается на каждое
// изменение через временный файл и rename.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pribylovaa/opensource-sharing/internal/storage"
)

type Storage struct {
	path   string
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

var _ storage.KV = (*Storage)(nil)

// New открывает документ path; отсутствующий файл — пустое хранилище.
func New(path string) (*Storage, error) {
	const op = "storage/file/New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Storage{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	case len(raw) > 0:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("%s: decode %s: %w", op, path, err)
		}
	}

	return s, nil
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", storage.ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}

	return v, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	prev, had := s.data[key]
	s.data[key] = value
	if err := s.flush(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}

	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.flush(); err != nil {
		s.data[key] = prev
		return err
	}

	return nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// flush вызывается под s.mu.
func (s *Storage) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage/file: encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("storage/file: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage/file: rename: %w", err)
	}

	return nil
}
