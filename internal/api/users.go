package api

import (
	"context"
	"strconv"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

func (c *Client) UpdateMe(ctx context.Context, in models.UserUpdate) (models.User, error) {
	return put[models.User](ctx, c, "/users/me", in)
}

func (c *Client) UpdateMyPassword(ctx context.Context, in models.PasswordUpdate) error {
	return putNoData(ctx, c, "/users/me/password", in)
}

// ListUsers — список пользователей (только администратор).
func (c *Client) ListUsers(ctx context.Context, p models.UserPageParams) (models.Page[models.User], error) {
	return get[models.Page[models.User]](ctx, c, "/users", p.Query())
}

func (c *Client) AdminUpdateUser(ctx context.Context, id int64, in models.AdminUserUpdate) (models.User, error) {
	return put[models.User](ctx, c, userPath(id, ""), in)
}

func (c *Client) AdminUpdatePassword(ctx context.Context, id int64, in models.AdminPasswordUpdate) error {
	return putNoData(ctx, c, userPath(id, "password"), in)
}

func userPath(id int64, sub string) string {
	p := "/users/" + strconv.FormatInt(id, 10)
	if sub != "" {
		p += "/" + sub
	}

	return p
}
