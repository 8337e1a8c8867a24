package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/feed"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/search"
)

type searchView struct {
	State  search.State      `json:"state"`
	Result search.Result     `json:"result"`
	Error  *apierrors.Notice `json:"error,omitempty"`
}

// parseQuery разбирает query страницы поиска.
func parseQuery(r *http.Request) (search.Query, error) {
	q := r.URL.Query()

	tags, err := int64sQuery(r, "tags")
	if err != nil {
		return search.Query{}, err
	}
	page, err := intQuery(r, "page", 1)
	if err != nil {
		return search.Query{}, err
	}
	size, err := intQuery(r, "page_size", 0)
	if err != nil {
		return search.Query{}, err
	}

	f := search.Filters{
		Keyword:  q.Get("keyword"),
		Platform: models.Platform(q.Get("platform")),
		Language: q.Get("language"),
		License:  q.Get("license"),
		Tags:     tags,
	}
	if v := q.Get("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return search.Query{}, apierrors.Invalid("featured", "must be a boolean")
		}
		f.Featured = &b
	}

	return search.Query{
		Filters:  f,
		Page:     page,
		PageSize: size,
		Sort: search.Sort{
			OrderBy: q.Get("order_by"),
			Order:   models.Order(strings.ToLower(q.Get("order"))),
		},
	}, nil
}

// Search — страница результатов двухфазного поиска.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.d.Search.Search(r.Context(), q)
	if errors.Is(err, apierrors.ErrStale) {
		apierrors.WriteError(w, r, err)
		return
	}

	// Сбой бэкенда отображается пустой выдачей с уведомлением, а не ошибкой страницы.
	v := searchView{State: h.d.Search.State(), Result: res}
	if err != nil {
		n := apierrors.ToNotice(err)
		v.Error = &n
	}
	v.Result.Items = feed.FilterVisible(res.Items, h.d.Store.CurrentUser())

	writeJSON(w, http.StatusOK, v)
}

// ResetSearch сбрасывает фильтры и кэш id.
func (h *Handlers) ResetSearch(w http.ResponseWriter, r *http.Request) {
	h.d.Search.SetFilters(search.Filters{})
	h.d.Search.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}

// Suggest регистрирует ввод и отдаёт последние подсказки.
func (h *Handlers) Suggest(w http.ResponseWriter, r *http.Request) {
	h.d.Suggest.Input(r.Context(), r.URL.Query().Get("keyword"))

	writeJSON(w, http.StatusOK, h.d.Suggest.State())
}

// Related — похожие проекты для страницы проекта.
func (h *Handlers) Related(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	tags, err := int64sQuery(r, "tags")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	limit, err := intQuery(r, "limit", h.d.RelatedLimit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := search.Related(r.Context(), h.d.Backend, h.d.Notifier, search.RelatedQuery{
		ProjectID: id,
		Tags:      tags,
		Language:  r.URL.Query().Get("language"),
		Limit:     limit,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, feed.FilterVisible(items, h.d.Store.CurrentUser()))
}
