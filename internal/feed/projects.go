package feed

import (
	"context"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// ProjectLister — постраничная выдача проектов (GET /api/projects).
type ProjectLister interface {
	ListProjects(ctx context.Context, p models.ProjectPageParams) (models.Page[models.ProjectSummary], error)
}

// ProjectFetcher строит загрузчик ленты главной страницы.
func ProjectFetcher(api ProjectLister, pageSize int, orderBy string, order models.Order) Fetcher[models.ProjectSummary] {
	return func(ctx context.Context, page int) (models.Page[models.ProjectSummary], error) {
		return api.ListProjects(ctx, models.ProjectPageParams{
			PageParams: models.PageParams{Page: page, PageSize: pageSize},
			OrderBy:    orderBy,
			Order:      order,
		})
	}
}

// Visible — показывать ли проект пользователю user (nil — аноним).
// Неодобренный проект видят только администратор и автор заявки.
func Visible(p models.ProjectSummary, user *models.User) bool {
	if p.IsApproved {
		return true
	}
	if user == nil {
		return false
	}

	return user.IsAdmin() || user.ID == p.SubmitterID
}

// FilterVisible оставляет только видимые пользователю проекты.
func FilterVisible(items []models.ProjectSummary, user *models.User) []models.ProjectSummary {
	out := make([]models.ProjectSummary, 0, len(items))
	for _, p := range items {
		if Visible(p, user) {
			out = append(out, p)
		}
	}

	return out
}
