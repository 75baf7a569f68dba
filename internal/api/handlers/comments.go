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

type CommentHandler struct {
	svc *services.CommentService
}

func NewCommentHandler(svc *services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())

	var req struct {
		CommentText string `json:"comment_text"`
		PostID      int64  `json:"post_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	c, err := h.svc.Create(r.Context(), req.CommentText, uid, req.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "no such post", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		httpx.WriteError(w, http.StatusNotFound, "not_found", "No comment found with this id", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"affected": n})
}
