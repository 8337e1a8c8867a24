package search

import (
	"context"
	"fmt"

	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// DefaultRelatedLimit — число рекомендаций на странице проекта.
const DefaultRelatedLimit = 6

// RelatedQuery описывает проект, для которого подбираются похожие.
// Пустой Language ищет проекты без указанного языка.
type RelatedQuery struct {
	ProjectID int64
	Tags      []int64
	Language  string
	Limit     int
}

var byStars = Sort{OrderBy: "stars", Order: models.OrderDesc}

// Related подбирает похожие проекты: по тегам и языку (фаза 1), без самого
// проекта, первые Limit id, затем карточки по звёздам (фаза 2).
// При ошибке любой фазы возвращаются самые популярные проекты без текущего.
func Related(ctx context.Context, b Backend, n notify.Notifier, q RelatedQuery) ([]models.ProjectSummary, error) {
	const op = "search/Related"

	if q.Limit <= 0 {
		q.Limit = DefaultRelatedLimit
	}
	lg := log.From(ctx).With("op", op, "project_id", q.ProjectID)

	items, err := related(ctx, b, q)
	if err == nil {
		return items, nil
	}
	lg.Warn("related search failed, falling back to popular", "err", err)

	items, err = popular(ctx, b, q)
	if err != nil {
		lg.Warn("popular fallback failed", "err", err)
		notify.Failure(ctx, n, notify.KeyRelatedFailed, err)
		return []models.ProjectSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func related(ctx context.Context, b Backend, q RelatedQuery) ([]models.ProjectSummary, error) {
	lang := q.Language
	if lang == "" {
		lang = models.NullLanguage
	}

	ids, err := b.SearchProjectIDs(ctx, models.ProjectSearchParams{Tags: q.Tags, Language: lang})
	if err != nil {
		return nil, err
	}

	picked := make([]int64, 0, q.Limit)
	for _, id := range ids {
		if id == q.ProjectID {
			continue
		}
		picked = append(picked, id)
		if len(picked) == q.Limit {
			break
		}
	}
	if len(picked) == 0 {
		return []models.ProjectSummary{}, nil
	}

	page, err := b.ListProjects(ctx, models.ProjectPageParams{
		PageParams: models.PageParams{Page: 1, PageSize: q.Limit},
		OrderBy:    byStars.OrderBy,
		Order:      byStars.Order,
		IDs:        picked,
	})
	if err != nil {
		return nil, err
	}

	return withoutProject(page.Items, q.ProjectID, q.Limit), nil
}

func popular(ctx context.Context, b Backend, q RelatedQuery) ([]models.ProjectSummary, error) {
	page, err := b.ListProjects(ctx, models.ProjectPageParams{
		PageParams: models.PageParams{Page: 1, PageSize: q.Limit},
		OrderBy:    byStars.OrderBy,
		Order:      byStars.Order,
	})
	if err != nil {
		return nil, err
	}

	return withoutProject(page.Items, q.ProjectID, q.Limit), nil
}

func withoutProject(items []models.ProjectSummary, id int64, limit int) []models.ProjectSummary {
	out := make([]models.ProjectSummary, 0, len(items))
	for _, p := range items {
		if p.ID == id {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}

	return out
}
