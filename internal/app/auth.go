package app

import (
	"context"
	"fmt"
	"strings"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/redact"
)

// AuthBackend — операции REST-API входа и регистрации.
type AuthBackend interface {
	Login(ctx context.Context, in models.Credentials) (models.LoginResponse, error)
	Register(ctx context.Context, in models.Credentials) (models.LoginResponse, error)
	Logout(ctx context.Context) error
	OAuthURL(ctx context.Context, provider string) (string, error)
	OAuthRegister(ctx context.Context, token string, in models.Credentials) (models.LoginResponse, error)
	Me(ctx context.Context, token string) (models.User, error)
}

// Auth — сценарии входа поверх Store: запрос к бэкенду, фиксация
// сессии и уведомление пользователя.
type Auth struct {
	backend  AuthBackend
	store    *Store
	notifier notify.Notifier
}

func NewAuth(b AuthBackend, s *Store, n notify.Notifier) *Auth {
	return &Auth{backend: b, store: s, notifier: n}
}

// Login — вход по имени пользователя и паролю.
func (a *Auth) Login(ctx context.Context, in models.Credentials) (models.User, error) {
	const op = "app/Auth.Login"

	in.Username = strings.TrimSpace(in.Username)
	lg := log.From(ctx).With("op", op, "username", in.Username)

	if err := validateCredentials(in, false); err != nil {
		lg.Warn("invalid argument", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyLoginFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := a.backend.Login(ctx, in)
	if err != nil {
		lg.Warn("login failed", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyLoginFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return a.establish(ctx, op, resp, notify.KeyLoginSucceeded)
}

// Register — регистрация с немедленным входом.
func (a *Auth) Register(ctx context.Context, in models.Credentials) (models.User, error) {
	const op = "app/Auth.Register"

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	lg := log.From(ctx).With("op", op, "username", in.Username, "email", redact.Email(in.Email))

	if err := validateCredentials(in, true); err != nil {
		lg.Warn("invalid argument", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyRegisterFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := a.backend.Register(ctx, in)
	if err != nil {
		lg.Warn("register failed", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyRegisterFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return a.establish(ctx, op, resp, notify.KeyRegistered)
}

// OAuthURL — адрес авторизации у провайдера (github, gitee).
func (a *Auth) OAuthURL(ctx context.Context, provider string) (string, error) {
	const op = "app/Auth.OAuthURL"

	u, err := a.backend.OAuthURL(ctx, provider)
	if err != nil {
		log.From(ctx).Warn("oauth url failed", "op", op, "provider", provider, "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyOAuthFailed, err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// OAuthCallback завершает вход через провайдера: токен из адреса возврата
// проверяется запросом профиля.
func (a *Auth) OAuthCallback(ctx context.Context, token string) (models.User, error) {
	const op = "app/Auth.OAuthCallback"

	lg := log.From(ctx).With("op", op, "token", redact.Token())

	if strings.TrimSpace(token) == "" {
		err := apierrors.Invalid("token", "missing")
		lg.Warn("invalid argument", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyOAuthFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	me, err := a.backend.Me(ctx, token)
	if err != nil {
		lg.Warn("verify oauth token failed", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyOAuthFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	resp := models.LoginResponse{AccessToken: token, TokenType: "bearer", User: me}

	return a.establish(ctx, op, resp, notify.KeyOAuthSucceeded)
}

// OAuthRegister создаёт учётную запись для нового пользователя провайдера;
// token — временный токен из адреса возврата.
func (a *Auth) OAuthRegister(ctx context.Context, token string, in models.Credentials) (models.User, error) {
	const op = "app/Auth.OAuthRegister"

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	lg := log.From(ctx).With("op", op, "username", in.Username, "email", redact.Email(in.Email))

	if err := validateCredentials(in, true); err != nil {
		lg.Warn("invalid argument", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyRegisterFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := a.backend.OAuthRegister(ctx, token, in)
	if err != nil {
		lg.Warn("oauth register failed", "err", err)
		notify.Failure(ctx, a.notifier, notify.KeyRegisterFailed, err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return a.establish(ctx, op, resp, notify.KeyRegistered)
}

// Logout завершает сессию. Локальная сессия очищается, даже если
// бэкенд ответил ошибкой.
func (a *Auth) Logout(ctx context.Context) error {
	const op = "app/Auth.Logout"

	lg := log.From(ctx).With("op", op)

	if err := a.backend.Logout(ctx); err != nil {
		lg.Warn("backend logout failed", "err", err)
	}
	if err := a.store.Logout(ctx); err != nil {
		lg.Warn("clear session failed", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	notify.Success(ctx, a.notifier, notify.KeyLoggedOut)
	return nil
}

func (a *Auth) establish(ctx context.Context, op string, resp models.LoginResponse, okKey string) (models.User, error) {
	if err := a.store.Login(ctx, resp); err != nil {
		if _, ok := apierrors.AsValidation(err); ok {
			log.From(ctx).Warn("backend returned no token", "op", op)
			err = fmt.Errorf("%w: empty access token", apierrors.ErrDecode)
			notify.Failure(ctx, a.notifier, notify.KeyLoginFailed, err)
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
		// Сессия в памяти уже установлена; не сохранилась только копия в хранилище.
		log.From(ctx).Warn("persist session failed", "op", op, "err", err)
	}

	notify.Success(ctx, a.notifier, okKey)
	return resp.User, nil
}

func validateCredentials(in models.Credentials, needEmail bool) error {
	switch {
	case in.Username == "":
		return apierrors.Invalid("username", "请输入用户名")
	case in.Password == "":
		return apierrors.Invalid("password", "请输入密码")
	case needEmail && !strings.Contains(in.Email, "@"):
		return apierrors.Invalid("email", "请输入有效的邮箱地址")
	}

	return nil
}
