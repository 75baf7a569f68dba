package postgres

import (
	"context"

	"technews/internal/models"
	"technews/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func NewAuditLogs(pool *pgxpool.Pool) repository.AuditLogs {
	return &auditLogsRepo{pool: pool}
}

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs(entity_type, entity_id, user_id, action) VALUES($1,$2,$3,$4)`,
		l.EntityType, l.EntityID, l.UserID, l.Action)
	return err
}
