package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
)

type themeView struct {
	IsDark bool `json:"is_dark"`
}

func (h *Handlers) Theme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeView{IsDark: h.d.Store.IsDark()})
}

func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	dark, err := h.d.Store.ToggleDark(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, themeView{IsDark: dark})
}

// Tags — теги для форм фильтра и заявки; кэшируются на время запуска.
func (h *Handlers) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.d.Store.TagCache(r.Context(), h.d.Tags)
	if err != nil {
		notify.Failure(r.Context(), h.d.Notifier, notify.KeyTagsLoadFailed, err)
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}
