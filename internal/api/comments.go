package api

import (
	"context"
	"strconv"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// ListComments возвращает плоский список комментариев проекта.
func (c *Client) ListComments(ctx context.Context, projectID int64) ([]models.Comment, error) {
	return get[[]models.Comment](ctx, c, projectPath(projectID, "comments"), nil)
}

// CreateComment создаёт комментарий или ответ (in.ParentID != nil).
func (c *Client) CreateComment(ctx context.Context, projectID int64, in models.CommentCreate) (models.Comment, error) {
	return post[models.Comment](ctx, c, projectPath(projectID, "comment"), in)
}

// DeleteComment удаляет комментарий; ответы бэкенд удаляет каскадно.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return del(ctx, c, "/comments/"+strconv.FormatInt(id, 10))
}
