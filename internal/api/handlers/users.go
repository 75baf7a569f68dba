package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"technews/internal/api/httpx"
	"technews/internal/repository"
	"technews/internal/services"
	"technews/internal/session"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	svc      *services.UserService
	sessions *session.Manager
}

func NewUserHandler(svc *services.UserService, sessions *session.Manager) *UserHandler {
	return &UserHandler{svc: svc, sessions: sessions}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No user found with this id", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "No user with that email address!"})
		case errors.Is(err, services.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Incorrect password!"})
		default:
			writeServiceError(w, err)
		}
		return
	}
	if err := h.sessions.Create(r.Context(), w, u.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"user":    u,
		"message": "You are now logged in!",
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(r.Context(), w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return
	}
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	n, err := h.svc.Update(r.Context(), id, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No user found with this id", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"affected": n})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return
	}
	n, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No user found with this id", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"affected": n})
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
