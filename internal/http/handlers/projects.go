package handlers

import (
	"net/http"
	"slices"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/feed"
	"github.com/pribylovaa/opensource-sharing/internal/models"
)

const (
	minScore = 1
	maxScore = 10
)

type favoriteView struct {
	ProjectID int64 `json:"project_id"`
	Favorited bool  `json:"favorited"`
}

// GetProject — детальная карточка. Неодобренный проект видят только
// автор и администратор; остальным он отдаётся как 404.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.d.Platform.GetProject(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if !feed.Visible(p.ProjectSummary, h.d.Store.CurrentUser()) {
		apierrors.WriteError(w, r, apierrors.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// MyProjects — проекты, отправленные текущим пользователем.
func (h *Handlers) MyProjects(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.d.Platform.MyProjects(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// SubmitProject отправляет проект на модерацию.
func (h *Handlers) SubmitProject(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.ProjectCreate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if err := validateProjectCreate(in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.d.Platform.CreateProject(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// UpdateMyProject — правка своего проекта.
func (h *Handlers) UpdateMyProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.ProjectUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.d.Platform.UpdateMyProject(r.Context(), id, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// RepoDetail — автозаполнение формы отправки по ?platform=&repo_id=.
func (h *Handlers) RepoDetail(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	platform, err := platformParam(q.Get("platform"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	repoID := q.Get("repo_id")
	if repoID == "" {
		apierrors.WriteError(w, r, apierrors.Invalid("repo_id", "required"))
		return
	}

	d, err := h.d.Platform.RepoDetail(r.Context(), platform, repoID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// ProjectRatings — последние оценки и распределение баллов.
func (h *Handlers) ProjectRatings(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	sum, err := h.d.Platform.ProjectRatings(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

// MyRating — своя оценка; null, если её нет.
func (h *Handlers) MyRating(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	rt, err := h.d.Platform.MyRating(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rt)
}

// Rate ставит оценку: первая создаётся, повторная заменяет прежнюю.
func (h *Handlers) Rate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.RatingInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if in.Score < minScore || in.Score > maxScore {
		apierrors.WriteError(w, r, apierrors.Invalid("score", "must be between 1 and 10"))
		return
	}

	ctx := r.Context()
	prev, err := h.d.Platform.MyRating(ctx, id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var stats models.RatingStats
	if prev == nil {
		stats, err = h.d.Platform.CreateRating(ctx, id, in)
	} else {
		stats, err = h.d.Platform.UpdateRating(ctx, id, in)
	}
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// ProjectFavorites — кто добавил проект в избранное.
func (h *Handlers) ProjectFavorites(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	users, err := h.d.Platform.ProjectFavorites(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// MyFavorites — избранное текущего пользователя.
func (h *Handlers) MyFavorites(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.d.Platform.MyFavorites(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// ToggleFavorite переключает отметку «в избранном» по текущему списку избранного.
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	favs, err := h.d.Platform.MyFavorites(ctx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	on := slices.ContainsFunc(favs, func(f models.FavoriteProject) bool { return f.Project.ID == id })
	if on {
		err = h.d.Platform.RemoveFavorite(ctx, id)
	} else {
		_, err = h.d.Platform.AddFavorite(ctx, id)
	}
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, favoriteView{ProjectID: id, Favorited: !on})
}

func validateProjectCreate(in models.ProjectCreate) error {
	fields := map[string]string{}
	if in.RepoID == "" {
		fields["repo_id"] = "required"
	}
	if _, err := platformParam(string(in.Platform)); err != nil {
		fields["platform"] = "must be GitHub or Gitee"
	}
	if in.Brief == "" {
		fields["brief"] = "required"
	}
	if len(fields) > 0 {
		return &apierrors.ValidationError{Fields: fields}
	}
	return nil
}

func platformParam(v string) (models.Platform, error) {
	switch p := models.Platform(v); p {
	case models.PlatformGitHub, models.PlatformGitee:
		return p, nil
	default:
		return "", apierrors.Invalid("platform", "must be GitHub or Gitee")
	}
}
