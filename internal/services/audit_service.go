package services

import (
	"context"
	"log/slog"

	"technews/internal/models"
	repo "technews/internal/repository"
	"technews/internal/worker"
)

// AuditService records guarded mutations. Writes go through the worker
// pool so they stay off the request path; a failed audit write is
// logged, never surfaced to the caller.
type AuditService struct {
	logs repo.AuditLogs
	wp   *worker.Pool
}

func NewAuditService(logs repo.AuditLogs, wp *worker.Pool) *AuditService {
	return &AuditService{logs: logs, wp: wp}
}

func (s *AuditService) Record(entityType string, entityID, userID int64, action string) {
	l := models.AuditLog{
		EntityType: entityType,
		Action:     action,
	}
	if entityID != 0 {
		l.EntityID = &entityID
	}
	if userID != 0 {
		l.UserID = &userID
	}

	write := func() {
		if err := s.logs.Create(context.Background(), l); err != nil {
			slog.Error("audit write", "err", err, "entity", entityType, "action", action)
		}
	}
	if s.wp == nil {
		write()
		return
	}
	s.wp.Submit(write)
}
