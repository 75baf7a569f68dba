package api

import (
	"net/http"

	"technews/internal/api/handlers"
	"technews/internal/metrics"
	"technews/internal/middleware"
	"technews/internal/services"
	"technews/internal/session"
	"technews/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Deps struct {
	Users    *services.UserService
	Posts    *services.PostService
	Comments *services.CommentService
	Sessions *session.Manager
	Web      *web.Handler
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	auth := middleware.NewSessionAuth(d.Sessions)
	uh := handlers.NewUserHandler(d.Users, d.Sessions)
	ph := handlers.NewPostHandler(d.Posts)
	ch := handlers.NewCommentHandler(d.Comments)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", uh.List)
			r.Post("/", uh.Create)
			r.Post("/login", uh.Login)
			r.Post("/logout", uh.Logout)
			r.Get("/{id}", uh.Get)
			r.With(auth.RequireSession).Put("/{id}", uh.Update)
			r.With(auth.RequireSession).Delete("/{id}", uh.Delete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", ph.List)
			r.Get("/{id}", ph.Get)
			r.With(auth.RequireSession).Post("/", ph.Create)
			// registered before /{id} so "upvote" is never parsed as an id
			r.With(auth.RequireSession).Put("/upvote", ph.Upvote)
			r.With(auth.RequireSession).Put("/{id}", ph.UpdateTitle)
			r.With(auth.RequireSession).Delete("/{id}", ph.Delete)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", ch.List)
			r.With(auth.RequireSession).Post("/", ch.Create)
			r.With(auth.RequireSession).Delete("/{id}", ch.Delete)
		})
	})

	if d.Web != nil {
		d.Web.Routes(r, auth)
	}

	return r
}
