// Package web serves the HTML views: homepage, login, single post,
// dashboard and edit-post. The views only render data assembled by the
// services; all rules live below this layer.
package web

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"technews/internal/middleware"
	"technews/internal/repository"
	"technews/internal/services"
	"technews/internal/session"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Handler struct {
	tpls     *template.Template
	posts    *services.PostService
	sessions *session.Manager
}

func NewHandler(posts *services.PostService, sessions *session.Manager) *Handler {
	tpls := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	return &Handler{tpls: tpls, posts: posts, sessions: sessions}
}

func (h *Handler) Routes(r chi.Router, auth *middleware.SessionAuth) {
	r.Get("/", h.Home)
	r.Get("/login", h.LoginPage)
	r.Get("/post/{id}", h.SinglePost)
	r.With(auth.RequireSessionPage).Get("/dashboard", h.Dashboard)
	r.With(auth.RequireSessionPage).Get("/dashboard/edit/{id}", h.EditPost)
	r.NotFound(h.NotFound)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	if err := h.tpls.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render", "template", name, "err", err)
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListDetail(r.Context(), nil)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	_, loggedIn := h.sessions.UserID(r)
	h.render(w, "homepage", map[string]any{
		"Title":    "Tech News",
		"Posts":    posts,
		"LoggedIn": loggedIn,
	})
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	// already logged in: straight back to the homepage
	if _, ok := h.sessions.UserID(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, "login", map[string]any{"Title": "Login"})
}

func (h *Handler) SinglePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	post, err := h.posts.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	_, loggedIn := h.sessions.UserID(r)
	h.render(w, "single-post", map[string]any{
		"Title":    post.Title,
		"Post":     post,
		"LoggedIn": loggedIn,
	})
}

// Dashboard lists only the signed-in user's posts.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	posts, err := h.posts.ListDetail(r.Context(), &uid)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, "dashboard", map[string]any{
		"Title":    "Your Posts",
		"Posts":    posts,
		"LoggedIn": true,
	})
}

func (h *Handler) EditPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	post, err := h.posts.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, "edit-post", map[string]any{
		"Title":    "Edit Post",
		"Post":     post,
		"LoggedIn": true,
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.render(w, "notfound", map[string]any{"Title": "Not Found"})
}
