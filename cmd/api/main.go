package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"technews/internal/api"
	"technews/internal/config"
	"technews/internal/db"
	"technews/internal/logger"
	"technews/internal/metrics"
	"technews/internal/repository/postgres"
	"technews/internal/services"
	"technews/internal/session"
	"technews/internal/web"
	"technews/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	sessions := session.NewManager(repos.Sessions, cfg.SessionTTL, wp)
	audit := services.NewAuditService(repos.AuditLogs, wp)
	userSvc := services.NewUserService(repos.Users, audit)
	postSvc := services.NewPostService(repos.Posts, repos.Votes, audit)
	commentSvc := services.NewCommentService(repos.Comments, audit)

	r := api.NewRouter(api.Deps{
		Users:    userSvc,
		Posts:    postSvc,
		Comments: commentSvc,
		Sessions: sessions,
		Web:      web.NewHandler(postSvc, sessions),
	})

	// sweep expired sessions in the background
	go func() {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				wp.Submit(func() {
					if n, err := sessions.PurgeExpired(context.Background()); err != nil {
						log.Error("session purge", "err", err)
					} else if n > 0 {
						log.Info("session purge", "removed", n)
					}
				})
			}
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
