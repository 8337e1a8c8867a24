package api

import (
	"context"
	"strconv"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	return get[[]models.Tag](ctx, c, "/tags", nil)
}

func (c *Client) CreateTag(ctx context.Context, in models.TagInput) (models.Tag, error) {
	return post[models.Tag](ctx, c, "/tags", in)
}

func (c *Client) UpdateTag(ctx context.Context, id int64, in models.TagInput) (models.Tag, error) {
	return put[models.Tag](ctx, c, "/tags/"+strconv.FormatInt(id, 10), in)
}

func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	return del(ctx, c, "/tags/"+strconv.FormatInt(id, 10))
}

// MyRating — оценка текущего пользователя; (nil, nil), если оценки нет.
func (c *Client) MyRating(ctx context.Context, projectID int64) (*models.Rating, error) {
	return get[*models.Rating](ctx, c, projectPath(projectID, "my-rating"), nil)
}

// ProjectRatings — последние оценки и распределение баллов.
func (c *Client) ProjectRatings(ctx context.Context, projectID int64) (models.RatingSummary, error) {
	return get[models.RatingSummary](ctx, c, projectPath(projectID, "ratings"), nil)
}

func (c *Client) CreateRating(ctx context.Context, projectID int64, in models.RatingInput) (models.RatingStats, error) {
	return post[models.RatingStats](ctx, c, projectPath(projectID, "rating"), in)
}

func (c *Client) UpdateRating(ctx context.Context, projectID int64, in models.RatingInput) (models.RatingStats, error) {
	return put[models.RatingStats](ctx, c, projectPath(projectID, "rating"), in)
}

// ProjectFavorites — пользователи, добавившие проект в избранное.
func (c *Client) ProjectFavorites(ctx context.Context, projectID int64) ([]models.FavoriteUser, error) {
	return get[[]models.FavoriteUser](ctx, c, projectPath(projectID, "favorites"), nil)
}

func (c *Client) AddFavorite(ctx context.Context, projectID int64) (models.Favorite, error) {
	return post[models.Favorite](ctx, c, projectPath(projectID, "favorite"), nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, projectID int64) error {
	return del(ctx, c, projectPath(projectID, "favorite"))
}

// MyFavorites — избранное текущего пользователя.
func (c *Client) MyFavorites(ctx context.Context) ([]models.FavoriteProject, error) {
	return get[[]models.FavoriteProject](ctx, c, "/favorites", nil)
}

// ListNotifications — уведомления текущего пользователя (без push, по запросу).
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	return get[[]models.Notification](ctx, c, "/notifications", nil)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return putNoData(ctx, c, "/notifications/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return del(ctx, c, "/notifications/"+strconv.FormatInt(id, 10))
}

// NotifyUser — адресное уведомление от администратора.
func (c *Client) NotifyUser(ctx context.Context, in models.NotificationCreate) error {
	return postNoData(ctx, c, "/notifications/user", in)
}
