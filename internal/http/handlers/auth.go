package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/opensource-sharing/internal/errors"
	"github.com/pribylovaa/opensource-sharing/internal/models"
)

type oauthRegisterRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	u, err := h.d.Auth.Login(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	u, err := h.d.Auth.Register(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Auth.Logout(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// OAuthURL отдаёт адрес авторизации у провайдера.
func (h *Handlers) OAuthURL(w http.ResponseWriter, r *http.Request) {
	u, err := h.d.Auth.OAuthURL(r.Context(), chi.URLParam(r, "provider"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

// OAuthCallback — возврат от провайдера с ?token=.
func (h *Handlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	u, err := h.d.Auth.OAuthCallback(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

// OAuthRegister завершает регистрацию нового пользователя провайдера.
func (h *Handlers) OAuthRegister(w http.ResponseWriter, r *http.Request) {
	var in oauthRegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	u, err := h.d.Auth.OAuthRegister(r.Context(), in.Token, models.Credentials{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

// Me — текущий пользователь: 409 hydrating до загрузки сессии, 401 для анонима.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.d.Store.RequireUser()
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
