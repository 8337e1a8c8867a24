package handlers

import (
	"context"
	"io"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// Platform — операции REST-бэкенда, которые ручки проксируют без
// собственного клиентского состояния. Реализуется *api.Client.
type Platform interface {
	GetProject(ctx context.Context, id int64) (models.ProjectFull, error)
	MyProjects(ctx context.Context) ([]models.ProjectSummary, error)
	CreateProject(ctx context.Context, in models.ProjectCreate) (models.ProjectFull, error)
	UpdateMyProject(ctx context.Context, id int64, in models.ProjectUpdate) (models.ProjectFull, error)
	RepoDetail(ctx context.Context, platform models.Platform, repoID string) (models.RepoDetail, error)

	MyRating(ctx context.Context, projectID int64) (*models.Rating, error)
	ProjectRatings(ctx context.Context, projectID int64) (models.RatingSummary, error)
	CreateRating(ctx context.Context, projectID int64, in models.RatingInput) (models.RatingStats, error)
	UpdateRating(ctx context.Context, projectID int64, in models.RatingInput) (models.RatingStats, error)

	ProjectFavorites(ctx context.Context, projectID int64) ([]models.FavoriteUser, error)
	MyFavorites(ctx context.Context) ([]models.FavoriteProject, error)
	AddFavorite(ctx context.Context, projectID int64) (models.Favorite, error)
	RemoveFavorite(ctx context.Context, projectID int64) error

	ListNotifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	DeleteNotification(ctx context.Context, id int64) error

	UpdateMe(ctx context.Context, in models.UserUpdate) (models.User, error)
	UpdateMyPassword(ctx context.Context, in models.PasswordUpdate) error

	UploadImage(ctx context.Context, name string, r io.Reader) (models.Image, error)
	DeleteImage(ctx context.Context, id int64) error
	CleanImages(ctx context.Context) error

	// Администрирование.
	UnapprovedProjects(ctx context.Context) ([]models.ProjectSummary, error)
	UpdateProject(ctx context.Context, id int64, in models.ProjectUpdate) (models.ProjectFull, error)
	SetProjectStatus(ctx context.Context, id int64, action models.ProjectStatusAction) error
	CreateTag(ctx context.Context, in models.TagInput) (models.Tag, error)
	UpdateTag(ctx context.Context, id int64, in models.TagInput) (models.Tag, error)
	DeleteTag(ctx context.Context, id int64) error
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListUsers(ctx context.Context, p models.UserPageParams) (models.Page[models.User], error)
	AdminUpdateUser(ctx context.Context, id int64, in models.AdminUserUpdate) (models.User, error)
	AdminUpdatePassword(ctx context.Context, id int64, in models.AdminPasswordUpdate) error
	NotifyUser(ctx context.Context, in models.NotificationCreate) error
}
