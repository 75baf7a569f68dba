package postgres

import (
	"context"
	"errors"
	"time"

	"technews/internal/models"
	"technews/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sessionsRepo struct{ pool *pgxpool.Pool }

func NewSessions(pool *pgxpool.Pool) repository.Sessions {
	return &sessionsRepo{pool: pool}
}

func (r *sessionsRepo) Create(ctx context.Context, s models.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions(id, user_id, expires_at, last_seen_at) VALUES($1,$2,$3,$4)`,
		s.ID, s.UserID, s.ExpiresAt, s.LastSeenAt)
	return mapPgError(err)
}

func (r *sessionsRepo) Get(ctx context.Context, id string) (models.Session, error) {
	var s models.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, expires_at, last_seen_at FROM sessions WHERE id=$1`, id,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.LastSeenAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Session{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func (r *sessionsRepo) Touch(ctx context.Context, id string, lastSeen, expires time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sessions SET last_seen_at=$2, expires_at=$3 WHERE id=$1`, id, lastSeen, expires)
	return err
}

func (r *sessionsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id=$1`, id)
	return err
}

func (r *sessionsRepo) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id=$1`, userID)
	return err
}

func (r *sessionsRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
