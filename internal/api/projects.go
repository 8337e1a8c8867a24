package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// ListProjects — постраничная выдача; при заданных IDs выборка ограничена ими.
func (c *Client) ListProjects(ctx context.Context, p models.ProjectPageParams) (models.Page[models.ProjectSummary], error) {
	return get[models.Page[models.ProjectSummary]](ctx, c, "/projects", p.Query())
}

// SearchProjectIDs — фаза 1 поиска: фильтры -> упорядоченный список id.
func (c *Client) SearchProjectIDs(ctx context.Context, p models.ProjectSearchParams) ([]int64, error) {
	ids, err := get[[]int64](ctx, c, "/projects/search", p.Query())
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

// SuggestProjects — подсказки названий по префиксу ключевого слова.
func (c *Client) SuggestProjects(ctx context.Context, keyword string) ([]string, error) {
	return get[[]string](ctx, c, "/projects/suggest", url.Values{"keyword": {keyword}})
}

func (c *Client) GetProject(ctx context.Context, id int64) (models.ProjectFull, error) {
	return get[models.ProjectFull](ctx, c, projectPath(id, ""), nil)
}

// MyProjects — проекты, отправленные текущим пользователем.
func (c *Client) MyProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	return get[[]models.ProjectSummary](ctx, c, "/projects/my", nil)
}

// UnapprovedProjects — очередь модерации (только администратор).
func (c *Client) UnapprovedProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	return get[[]models.ProjectSummary](ctx, c, "/projects/unapproved", nil)
}

func (c *Client) CreateProject(ctx context.Context, in models.ProjectCreate) (models.ProjectFull, error) {
	return post[models.ProjectFull](ctx, c, "/projects", in)
}

// UpdateProject — изменение проекта администратором.
func (c *Client) UpdateProject(ctx context.Context, id int64, in models.ProjectUpdate) (models.ProjectFull, error) {
	return put[models.ProjectFull](ctx, c, projectPath(id, ""), in)
}

// UpdateMyProject — изменение своего проекта владельцем.
func (c *Client) UpdateMyProject(ctx context.Context, id int64, in models.ProjectUpdate) (models.ProjectFull, error) {
	return put[models.ProjectFull](ctx, c, "/projects/my/"+strconv.FormatInt(id, 10), in)
}

// RepoDetail — метаданные репозитория для автозаполнения формы отправки.
func (c *Client) RepoDetail(ctx context.Context, platform models.Platform, repoID string) (models.RepoDetail, error) {
	q := url.Values{"platform": {string(platform)}, "repo_id": {repoID}}
	return get[models.RepoDetail](ctx, c, "/projects/repo_detail", q)
}

// SetProjectStatus — модерация: approve / reject / feature / unfeature.
func (c *Client) SetProjectStatus(ctx context.Context, id int64, action models.ProjectStatusAction) error {
	switch action {
	case models.ActionApprove, models.ActionReject, models.ActionFeature, models.ActionUnfeature:
	default:
		return fmt.Errorf("unknown project action %q", action)
	}

	return putNoData(ctx, c, projectPath(id, string(action)), nil)
}

func projectPath(id int64, sub string) string {
	p := "/projects/" + strconv.FormatInt(id, 10)
	if sub != "" {
		p += "/" + sub
	}

	return p
}
