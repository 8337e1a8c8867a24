// Package handlers — JSON-ручки сервера представлений.
//
// Каждая ручка отображает состояние клиентского слоя (лента, поиск,
// комментарии, сессия, тема) и транслирует действия пользователя в его
// операции. Ошибки выводятся через apierrors.WriteError.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/opensource-sharing/internal/app"
	"github.com/pribylovaa/opensource-sharing/internal/comments"
	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/feed"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/search"
)

// Deps — зависимости ручек; собираются в корне композиции.
type Deps struct {
	Store      *app.Store
	Auth       *app.Auth
	Feed       *feed.Accumulator[models.ProjectSummary]
	FeedSignal *feed.Signal
	Search     *search.Session
	Suggest    *search.Suggester
	Backend    search.Backend
	Threads    *comments.Threads
	Tags       app.TagLoader
	Notices    *notify.Recorder
	Notifier   notify.Notifier
	Platform   Platform

	RelatedLimit int
}

// Handlers агрегирует зависимости.
type Handlers struct {
	d Deps
}

func New(d Deps) *Handlers {
	if d.RelatedLimit <= 0 {
		d.RelatedLimit = search.DefaultRelatedLimit
	}
	return &Handlers{d: d}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return apierrors.Invalid("body", err.Error())
	}
	return nil
}

// idParam — положительный int64 из сегмента пути.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apierrors.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// intQuery — неотрицательное целое из query; пустое значение — def.
func intQuery(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apierrors.Invalid(name, "must be a non-negative integer")
	}
	return n, nil
}

// int64sQuery — повторяющийся ключ query с id.
func int64sQuery(r *http.Request, name string) ([]int64, error) {
	raw := r.URL.Query()[name]
	out := make([]int64, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, apierrors.Invalid(name, "must be integers")
		}
		out = append(out, id)
	}
	return out, nil
}

// requireAdmin пропускает только администратора; прочим — ErrForbidden.
func (h *Handlers) requireAdmin() (*models.User, error) {
	u, err := h.d.Store.RequireUser()
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, apierrors.ErrForbidden
	}
	return u, nil
}

// Notices отдаёт и очищает накопленные уведомления.
func (h *Handlers) Notices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.d.Notices.Drain())
}
