package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/feed"
	"github.com/pribylovaa/opensource-sharing/internal/models"
)

type feedView struct {
	Items       []models.ProjectSummary `json:"items"`
	CurrentPage int                     `json:"current_page"`
	HasMore     bool                    `json:"has_more"`
	Loading     bool                    `json:"loading"`
	Loaded      bool                    `json:"loaded"`
	Error       *apierrors.Notice       `json:"error,omitempty"`
}

func (h *Handlers) feedView() feedView {
	snap := h.d.Feed.Snapshot()

	v := feedView{
		Items:       feed.FilterVisible(snap.Items, h.d.Store.CurrentUser()),
		CurrentPage: snap.CurrentPage,
		HasMore:     snap.HasMore,
		Loading:     snap.Loading,
		Loaded:      snap.Loaded,
	}
	if snap.Err != nil {
		n := apierrors.ToNotice(snap.Err)
		v.Error = &n
	}

	return v
}

// GetFeed — лента главной страницы; первая выдача загружается при первом обращении.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	if snap := h.d.Feed.Snapshot(); !snap.Loaded && !snap.Loading {
		// Ошибка уже отражена в снапшоте и уведомлениях.
		_ = h.d.Feed.LoadInitial(r.Context())
	}

	writeJSON(w, http.StatusOK, h.feedView())
}

// ReloadFeed перезагружает ленту с первой страницы.
func (h *Handlers) ReloadFeed(w http.ResponseWriter, r *http.Request) {
	_ = h.d.Feed.LoadInitial(r.Context())

	writeJSON(w, http.StatusOK, h.feedView())
}

// MoreFeed — сторож конца ленты стал видимым; дозагрузку выполняет feed.Watch.
func (h *Handlers) MoreFeed(w http.ResponseWriter, r *http.Request) {
	h.d.FeedSignal.Fire()

	writeJSON(w, http.StatusAccepted, h.feedView())
}
