// Package memory — хранилище в памяти процесса (тесты, driver=memory).
package memory

import (
	"context"
	"sync"

	"github.com/pribylovaa/opensource-sharing/internal/storage"
)

type Storage struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

var _ storage.KV = (*Storage)(nil)

func New() *Storage {
	return &Storage{data: make(map[string]string)}
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
	s.data[key] = value

	return nil
}

func (s *Storage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	delete(s.data, key)

	return nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
