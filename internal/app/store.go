// Package app — контекст приложения: сессия пользователя, тема и кэш тегов.
//
// Store создаётся один раз в корне композиции (Create) и освобождается
// через Dispose. Сохранённое состояние подгружается из хранилища в фоне;
// до завершения гидратации Access возвращает AccessPending, и решения
// о доступе откладываются, а не принимаются как для анонима.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
	"github.com/pribylovaa/opensource-sharing/internal/storage"
)

// Ключи хранилища.
var (
	KeyAuth     = storage.Local("auth")
	KeyDarkMode = storage.Local("dark-mode")
	KeyTags     = storage.Session("tags")
)

// Access — решение о доступе к защищённым страницам.
type Access int

const (
	AccessPending Access = iota
	AccessAnonymous
	AccessGranted
)

func (a Access) String() string {
	switch a {
	case AccessAnonymous:
		return "anonymous"
	case AccessGranted:
		return "granted"
	default:
		return "pending"
	}
}

// Session — сохраняемая сессия пользователя.
type Session struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type,omitempty"`
}

// LoggedIn — есть токен и профиль.
func (s Session) LoggedIn() bool { return s.Token != "" && s.User != nil }

type theme struct {
	IsDark bool `json:"is_dark"`
}

// field — поле состояния; поля, изменённые до окончания гидратации,
// сохранёнными значениями не перезаписываются.
type field uint8

const (
	fieldSession field = 1 << iota
	fieldTheme
	fieldTags
)

// Store — общее состояние клиента.
type Store struct {
	kv       storage.KV
	hydrated chan struct{}

	tagsLoad singleflight.Group

	mu      sync.RWMutex
	session Session
	isDark  bool
	tags    []models.Tag
	touched field
}

// Create возвращает Store сразу; сохранённое состояние подгружается в фоне.
func Create(ctx context.Context, kv storage.KV) (*Store, error) {
	const op = "app/Create"

	if kv == nil {
		return nil, fmt.Errorf("%s: nil storage", op)
	}

	s := &Store{
		kv:       kv,
		hydrated: make(chan struct{}),
		isDark:   true,
	}
	go s.hydrate(context.WithoutCancel(ctx))

	return s, nil
}

func (s *Store) hydrate(ctx context.Context) {
	const op = "app/Store.hydrate"

	defer close(s.hydrated)
	lg := log.From(ctx).With("op", op)

	var (
		sess   Session
		th     = theme{IsDark: true}
		tags   []models.Tag
		loaded field
	)
	if s.load(ctx, KeyAuth, &sess) {
		loaded |= fieldSession
	}
	if s.load(ctx, KeyDarkMode, &th) {
		loaded |= fieldTheme
	}
	if s.load(ctx, KeyTags, &tags) {
		loaded |= fieldTags
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if loaded&fieldSession != 0 && s.touched&fieldSession == 0 && sess.LoggedIn() {
		if tokenExpired(sess.Token, time.Now()) {
			// Удаление под блокировкой: Login, начатый позже, запишет ключ после нас.
			lg.Info("persisted session expired", "user_id", sess.User.ID)
			if err := s.kv.Remove(ctx, KeyAuth); err != nil {
				lg.Warn("storage remove failed", "key", KeyAuth, "err", err)
			}
		} else {
			s.session = sess
		}
	}
	if loaded&fieldTheme != 0 && s.touched&fieldTheme == 0 {
		s.isDark = th.IsDark
	}
	if loaded&fieldTags != 0 && s.touched&fieldTags == 0 && tags != nil {
		s.tags = tags
	}

	lg.Debug("state hydrated", "logged_in", s.session.LoggedIn(), "dark", s.isDark, "tags", len(s.tags))
}

// load читает и декодирует ключ; отсутствие и порча записи — не ошибка гидратации.
func (s *Store) load(ctx context.Context, key string, dst any) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.From(ctx).Warn("storage read failed", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.From(ctx).Warn("corrupt persisted state ignored", "key", key, "err", err)
		return false
	}

	return true
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.kv.Set(ctx, key, string(raw))
}

// Hydrated — завершена ли фоновая загрузка.
func (s *Store) Hydrated() bool {
	select {
	case <-s.hydrated:
		return true
	default:
		return false
	}
}

// WaitHydrated ждёт окончания гидратации или отмены ctx.
func (s *Store) WaitHydrated(ctx context.Context) error {
	select {
	case <-s.hydrated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Access — решение о доступе; до гидратации всегда AccessPending.
func (s *Store) Access() Access {
	if !s.Hydrated() {
		return AccessPending
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session.LoggedIn() {
		return AccessGranted
	}

	return AccessAnonymous
}

// RequireUser возвращает пользователя сессии или ошибку доступа
// (ErrHydrating, пока состояние не загружено; ErrUnauthenticated для анонима).
func (s *Store) RequireUser() (*models.User, error) {
	switch s.Access() {
	case AccessPending:
		return nil, apierrors.ErrHydrating
	case AccessAnonymous:
		return nil, apierrors.ErrUnauthenticated
	}

	return s.CurrentUser(), nil
}

// Session возвращает копию сессии.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}

	return out
}

// Token — токен доступа для заголовка Authorization.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session.Token
}

// CurrentUser — профиль текущего пользователя или nil.
func (s *Store) CurrentUser() *models.User {
	return s.Session().User
}

// Login фиксирует успешный вход.
func (s *Store) Login(ctx context.Context, resp models.LoginResponse) error {
	const op = "app/Store.Login"

	if resp.AccessToken == "" {
		return fmt.Errorf("%s: %w", op, apierrors.Invalid("access_token", "empty"))
	}

	u := resp.User
	sess := Session{User: &u, Token: resp.AccessToken, TokenType: resp.TokenType}

	s.mu.Lock()
	s.session = sess
	s.touched |= fieldSession
	s.mu.Unlock()

	log.From(ctx).Info("logged in", "op", op, "user_id", u.ID)

	if err := s.save(ctx, KeyAuth, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Logout очищает сессию.
func (s *Store) Logout(ctx context.Context) error {
	const op = "app/Store.Logout"

	s.mu.Lock()
	s.session = Session{}
	s.touched |= fieldSession
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, KeyAuth); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateUser заменяет профиль, не трогая токен. Без активной сессии — ErrUnauthenticated.
func (s *Store) UpdateUser(ctx context.Context, u models.User) error {
	const op = "app/Store.UpdateUser"

	s.mu.Lock()
	if s.session.Token == "" {
		s.mu.Unlock()
		return fmt.Errorf("%s: %w", op, apierrors.ErrUnauthenticated)
	}
	s.session.User = &u
	s.touched |= fieldSession
	sess := s.session
	s.mu.Unlock()

	if err := s.save(ctx, KeyAuth, sess); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsDark — тёмная тема (по умолчанию включена).
func (s *Store) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.isDark
}

// ToggleDark переключает тему и возвращает новое значение.
func (s *Store) ToggleDark(ctx context.Context) (bool, error) {
	const op = "app/Store.ToggleDark"

	s.mu.Lock()
	s.isDark = !s.isDark
	s.touched |= fieldTheme
	v := s.isDark
	s.mu.Unlock()

	if err := s.save(ctx, KeyDarkMode, theme{IsDark: v}); err != nil {
		return v, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Tags — кэшированные теги; nil, если кэш пуст.
func (s *Store) Tags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tags == nil {
		return nil
	}

	return slices.Clone(s.tags)
}

// SetTags сохраняет теги в кэш текущего запуска.
func (s *Store) SetTags(ctx context.Context, tags []models.Tag) error {
	const op = "app/Store.SetTags"

	if tags == nil {
		tags = []models.Tag{}
	}
	tags = slices.Clone(tags)

	s.mu.Lock()
	s.tags = tags
	s.touched |= fieldTags
	s.mu.Unlock()

	if err := s.save(ctx, KeyTags, tags); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// TagLoader загружает теги с бэкенда.
type TagLoader func(ctx context.Context) ([]models.Tag, error)

// TagCache возвращает теги из кэша, а при пустом кэше загружает их один раз;
// параллельные вызовы разделяют одну загрузку.
func (s *Store) TagCache(ctx context.Context, load TagLoader) ([]models.Tag, error) {
	const op = "app/Store.TagCache"

	if err := s.WaitHydrated(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if tags := s.Tags(); tags != nil {
		return tags, nil
	}

	v, err, _ := s.tagsLoad.Do("tags", func() (any, error) {
		tags, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.SetTags(ctx, tags); err != nil {
			log.From(ctx).Warn("persist tags failed", "op", op, "err", err)
		}
		return s.Tags(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return slices.Clone(v.([]models.Tag)), nil
}

// Dispose очищает ключи текущего запуска. Хранилище закрывает владелец.
func (s *Store) Dispose(ctx context.Context) error {
	const op = "app/Store.Dispose"

	if err := s.WaitHydrated(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Remove(ctx, KeyTags); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
