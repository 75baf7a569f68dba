package postgres

import (
	"context"

	"technews/internal/models"
	"technews/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type votesRepo struct{ pool *pgxpool.Pool }

func NewVotes(pool *pgxpool.Pool) repository.Votes {
	return &votesRepo{pool: pool}
}

func (r *votesRepo) Create(ctx context.Context, userID, postID int64) (models.Vote, error) {
	var v models.Vote
	err := r.pool.QueryRow(ctx,
		`INSERT INTO votes(user_id, post_id) VALUES($1,$2)
		 RETURNING id, user_id, post_id`,
		userID, postID,
	).Scan(&v.ID, &v.UserID, &v.PostID)
	if err != nil {
		return models.Vote{}, mapPgError(err)
	}
	return v, nil
}

func (r *votesRepo) CountByPost(ctx context.Context, postID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM votes WHERE post_id=$1`, postID).Scan(&n)
	return n, err
}
