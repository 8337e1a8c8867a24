package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/pkg/log"
)

// Ручки администратора: очередь модерации, теги, пользователи.
// Все проверяют роль до обращения к бэкенду.

func (h *Handlers) UnapprovedProjects(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.d.Platform.UnapprovedProjects(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// ModerateProject — approve | reject | feature | unfeature.
func (h *Handlers) ModerateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	action := models.ProjectStatusAction(chi.URLParam(r, "action"))
	switch action {
	case models.ActionApprove, models.ActionReject, models.ActionFeature, models.ActionUnfeature:
	default:
		apierrors.WriteError(w, r, apierrors.Invalid("action", "must be approve, reject, feature or unfeature"))
		return
	}

	if err := h.d.Platform.SetProjectStatus(r.Context(), id, action); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AdminUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.ProjectUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	p, err := h.d.Platform.UpdateProject(r.Context(), id, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.TagInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if in.Name == "" {
		apierrors.WriteError(w, r, apierrors.Invalid("name", "required"))
		return
	}

	tag, err := h.d.Platform.CreateTag(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	h.refreshTags(r.Context())

	writeJSON(w, http.StatusCreated, tag)
}

func (h *Handlers) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.TagInput
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	tag, err := h.d.Platform.UpdateTag(r.Context(), id, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	h.refreshTags(r.Context())

	writeJSON(w, http.StatusOK, tag)
}

func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.d.Platform.DeleteTag(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	h.refreshTags(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// refreshTags перечитывает теги в кэш сессии после изменения справочника.
// Сбой не отменяет уже выполненное изменение: кэш останется прежним.
func (h *Handlers) refreshTags(ctx context.Context) {
	const op = "handlers/Handlers.refreshTags"

	tags, err := h.d.Platform.ListTags(ctx)
	if err == nil {
		err = h.d.Store.SetTags(ctx, tags)
	}
	if err != nil {
		log.From(ctx).Warn("tag cache refresh failed", "op", op, "err", err)
	}
}

// ListUsers — ?page=&page_size=&order_by=&order=.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := intQuery(r, "page", 1)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	size, err := intQuery(r, "page_size", 20)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	q := r.URL.Query()
	order := models.Order(q.Get("order"))
	if order != "" && !order.Valid() {
		apierrors.WriteError(w, r, apierrors.Invalid("order", "must be asc or desc"))
		return
	}

	users, err := h.d.Platform.ListUsers(r.Context(), models.UserPageParams{
		PageParams: models.PageParams{Page: page, PageSize: size},
		OrderBy:    q.Get("order_by"),
		Order:      order,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.AdminUserUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	switch in.Role {
	case "", models.RoleUser, models.RoleAdmin:
	default:
		apierrors.WriteError(w, r, apierrors.Invalid("role", "must be user or admin"))
		return
	}

	u, err := h.d.Platform.AdminUpdateUser(r.Context(), id, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) AdminUpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.AdminPasswordUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if in.NewPassword == "" {
		apierrors.WriteError(w, r, apierrors.Invalid("new_password", "required"))
		return
	}

	if err := h.d.Platform.AdminUpdatePassword(r.Context(), id, in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// NotifyUser — адресное уведомление пользователю.
func (h *Handlers) NotifyUser(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.NotificationCreate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if in.UserID <= 0 || in.Content == "" {
		apierrors.WriteError(w, r, apierrors.Invalid("notification", "user_id and content are required"))
		return
	}

	if err := h.d.Platform.NotifyUser(r.Context(), in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
