package search

import (
	"context"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// Backend — операции REST-API, нужные поиску.
type Backend interface {
	SearchProjectIDs(ctx context.Context, p models.ProjectSearchParams) ([]int64, error)
	ListProjects(ctx context.Context, p models.ProjectPageParams) (models.Page[models.ProjectSummary], error)
	SuggestProjects(ctx context.Context, keyword string) ([]string, error)
}
