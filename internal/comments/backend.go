package comments

import (
	"context"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// Backend — операции REST-API, нужные ветке комментариев.
type Backend interface {
	ListComments(ctx context.Context, projectID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, projectID int64, in models.CommentCreate) (models.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// Users отдаёт текущего пользователя сессии (nil — аноним).
type Users interface {
	CurrentUser() *models.User
}
