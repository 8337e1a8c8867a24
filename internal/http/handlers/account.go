package handlers

import (
	"context"
	"net/http"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// maxImageSize — предел тела загрузки изображения.
const maxImageSize = 10 << 20

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.d.Platform.ListNotifications(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) ReadNotification(w http.ResponseWriter, r *http.Request) {
	h.notificationAction(w, r, h.d.Platform.MarkNotificationRead)
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	h.notificationAction(w, r, h.d.Platform.DeleteNotification)
}

// notificationAction применяет действие к уведомлению и отдаёт свежий список.
func (h *Handlers) notificationAction(w http.ResponseWriter, r *http.Request, act func(ctx context.Context, id int64) error) {
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
	if err := act(ctx, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.d.Platform.ListNotifications(ctx)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// UpdateMe меняет профиль и сразу обновляет пользователя сессии.
func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.UserUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	u, err := h.d.Platform.UpdateMe(ctx, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if err := h.d.Store.UpdateUser(ctx, u); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in models.PasswordUpdate
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if in.OldPassword == "" || in.NewPassword == "" {
		apierrors.WriteError(w, r, apierrors.Invalid("password", "old and new password are required"))
		return
	}

	if err := h.d.Platform.UpdateMyPassword(r.Context(), in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage принимает multipart-поле "file" и пересылает его бэкенду.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r, apierrors.Invalid("file", err.Error()))
		return
	}
	defer f.Close()

	img, err := h.d.Platform.UploadImage(r.Context(), hdr.Filename, f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, img)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.d.Platform.DeleteImage(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CleanImages — сброс непривязанных загрузок при отмене формы.
func (h *Handlers) CleanImages(w http.ResponseWriter, r *http.Request) {
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.d.Platform.CleanImages(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
