// Package storage задаёт порт персистентного key-value хранилища
// клиентского состояния (сессия, тема, кэш тегов).
//
// Ключи несут область видимости префиксом:
//   - "local:"   — переживает перезапуск процесса;
//   - "session:" — очищается при закрытии приложения (Store.Dispose).
package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound — ключ отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrClosed — хранилище уже закрыто.
	ErrClosed = errors.New("storage closed")
)

// Области видимости ключей.
const (
	ScopeLocal   = "local:"
	ScopeSession = "session:"
)

// KV — минимальный контракт хранилища.
type KV interface {
	// Get возвращает значение или ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set сохраняет значение, перезаписывая прежнее.
	Set(ctx context.Context, key, value string) error
	// Remove удаляет ключ; отсутствие ключа ошибкой не считается.
	Remove(ctx context.Context, key string) error
	// Close освобождает ресурсы хранилища.
	Close() error
}

// Local — ключ долговременной области.
func Local(name string) string { return ScopeLocal + name }

// Session — ключ области текущего запуска.
func Session(name string) string { return ScopeSession + name }

// IsSession сообщает, принадлежит ли ключ области текущего запуска.
func IsSession(key string) bool { return strings.HasPrefix(key, ScopeSession) }
