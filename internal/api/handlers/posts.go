package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"technews/internal/api/httpx"
	"technews/internal/middleware"
	"technews/internal/repository"
	"technews/internal/services"
)

type PostHandler struct {
	svc *services.PostService
}

func NewPostHandler(svc *services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListDetail(r.Context(), nil)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return
	}
	p, err := h.svc.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No post found with this id", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req struct {
		Title   string `json:"title"`
		PostURL string `json:"post_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	p, err := h.svc.Create(r.Context(), req.Title, req.PostURL, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

// Upvote handles PUT /api/posts/upvote. The voter is the session user;
// the response carries the post with its recomputed vote count.
func (h *PostHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req struct {
		PostID int64 `json:"post_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	detail, err := h.svc.Upvote(r.Context(), uid, req.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "No post found with this id", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *PostHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	id, err := idParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	n, err := h.svc.UpdateTitle(r.Context(), id, req.Title, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No post found with this id", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"affected": n})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	id, err := idParam(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return
	}
	n, err := h.svc.Delete(r.Context(), id, uid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if n == 0 {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No post found with this id", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"affected": n})
}
