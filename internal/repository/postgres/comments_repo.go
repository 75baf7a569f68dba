package postgres

import (
	"context"

	"technews/internal/models"
	"technews/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type commentsRepo struct{ pool *pgxpool.Pool }

func NewComments(pool *pgxpool.Pool) repository.Comments {
	return &commentsRepo{pool: pool}
}

func (r *commentsRepo) Create(ctx context.Context, text string, userID, postID int64) (models.Comment, error) {
	var c models.Comment
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments(comment_text, user_id, post_id)
		 VALUES($1,$2,$3)
		 RETURNING id, comment_text, user_id, post_id, created_at`,
		text, userID, postID,
	).Scan(&c.ID, &c.CommentText, &c.UserID, &c.PostID, &c.CreatedAt)
	if err != nil {
		return models.Comment{}, mapPgError(err)
	}
	return c, nil
}

func (r *commentsRepo) List(ctx context.Context) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.comment_text, c.user_id, c.post_id, c.created_at, u.username
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.CommentText, &c.UserID, &c.PostID, &c.CreatedAt, &c.Username); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *commentsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
