package api

import (
	"context"
	"fmt"

	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
)

func (c *Client) Login(ctx context.Context, in models.Credentials) (models.LoginResponse, error) {
	return post[models.LoginResponse](ctx, c, "/auth/login", in)
}

func (c *Client) Register(ctx context.Context, in models.Credentials) (models.LoginResponse, error) {
	return post[models.LoginResponse](ctx, c, "/auth/register", in)
}

// Logout завершает сессию на стороне бэкенда.
func (c *Client) Logout(ctx context.Context) error {
	return postNoData(ctx, c, "/auth/logout", nil)
}

// OAuthURL возвращает адрес авторизации у провайдера (github | gitee).
func (c *Client) OAuthURL(ctx context.Context, provider string) (string, error) {
	switch provider {
	case "github", "gitee":
	default:
		return "", fmt.Errorf("unknown oauth provider %q", provider)
	}

	return get[string](ctx, c, "/auth/"+provider, nil)
}

// OAuthRegister завершает регистрацию нового OAuth-пользователя.
// token — временный токен из колбэка провайдера.
func (c *Client) OAuthRegister(ctx context.Context, token string, in models.Credentials) (models.LoginResponse, error) {
	return post[models.LoginResponse](interceptors.WithAuthToken(ctx, token), c, "/auth/oauth-register", in)
}

// Me возвращает профиль владельца token; пустой token — токен текущей сессии.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	if token != "" {
		ctx = interceptors.WithAuthToken(ctx, token)
	}

	return get[models.User](ctx, c, "/users/me", nil)
}
