package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
)

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// ListComments — дерево комментариев проекта; ?reload=1 перечитывает его.
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	th := h.d.Threads.Get(id)
	if st := th.State(); !st.Loaded || r.URL.Query().Get("reload") == "1" {
		if err := th.Load(r.Context()); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, th.State())
}

// CreateComment публикует комментарий или ответ (parent_id).
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if _, err := h.d.Store.RequireUser(); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in createCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	th := h.d.Threads.Get(id)
	if in.ParentID != nil {
		_, err = th.Reply(r.Context(), *in.ParentID, in.Content)
	} else {
		_, err = th.Add(r.Context(), in.Content)
	}
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, th.State())
}

// DeleteComment удаляет комментарий вместе с ответами.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	commentID, err := idParam(r, "comment_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	th := h.d.Threads.Get(id)
	if err := th.Delete(r.Context(), commentID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, th.State())
}
