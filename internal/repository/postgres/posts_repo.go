package postgres

import (
	"context"
	"errors"

	"technews/internal/models"
	"technews/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repository.Posts {
	return &postsRepo{pool: pool}
}

// Vote counts are always derived at read time from the votes table,
// never stored on posts.
const postDetailSelect = `
	SELECT p.id, p.title, p.post_url, p.user_id, p.created_at, p.updated_at,
	       u.username,
	       (SELECT COUNT(*) FROM votes v WHERE v.post_id = p.id) AS vote_count
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func (r *postsRepo) Create(ctx context.Context, title, postURL string, userID int64) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts(title, post_url, user_id)
		 VALUES($1,$2,$3)
		 RETURNING id, title, post_url, user_id, created_at, updated_at`,
		title, postURL, userID,
	).Scan(&p.ID, &p.Title, &p.PostURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Post{}, mapPgError(err)
	}
	return p, nil
}

func (r *postsRepo) GetDetail(ctx context.Context, id int64) (models.PostDetail, error) {
	var d models.PostDetail
	err := r.pool.QueryRow(ctx, postDetailSelect+` WHERE p.id=$1`, id).Scan(
		&d.ID, &d.Title, &d.PostURL, &d.UserID, &d.CreatedAt, &d.UpdatedAt,
		&d.Username, &d.VoteCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PostDetail{}, repository.ErrNotFound
	}
	if err != nil {
		return models.PostDetail{}, err
	}

	comments, err := r.commentsForPosts(ctx, []int64{d.ID})
	if err != nil {
		return models.PostDetail{}, err
	}
	d.Comments = comments[d.ID]
	if d.Comments == nil {
		d.Comments = []models.Comment{}
	}
	return d, nil
}

func (r *postsRepo) ListDetails(ctx context.Context, f repository.PostFilter) ([]models.PostDetail, error) {
	q := postDetailSelect
	var args []any
	if f.UserID != nil {
		q += ` WHERE p.user_id=$1`
		args = append(args, *f.UserID)
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.PostDetail
	var ids []int64
	for rows.Next() {
		var d models.PostDetail
		if err := rows.Scan(&d.ID, &d.Title, &d.PostURL, &d.UserID, &d.CreatedAt, &d.UpdatedAt,
			&d.Username, &d.VoteCount); err != nil {
			return nil, err
		}
		details = append(details, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return []models.PostDetail{}, nil
	}

	comments, err := r.commentsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range details {
		details[i].Comments = comments[details[i].ID]
		if details[i].Comments == nil {
			details[i].Comments = []models.Comment{}
		}
	}
	return details, nil
}

func (r *postsRepo) commentsForPosts(ctx context.Context, postIDs []int64) (map[int64][]models.Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.comment_text, c.user_id, c.post_id, c.created_at, u.username
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = ANY($1)
		 ORDER BY c.created_at`, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]models.Comment)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.CommentText, &c.UserID, &c.PostID, &c.CreatedAt, &c.Username); err != nil {
			return nil, err
		}
		out[c.PostID] = append(out[c.PostID], c)
	}
	return out, rows.Err()
}

func (r *postsRepo) UpdateTitle(ctx context.Context, id int64, title string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title=$2, updated_at=now() WHERE id=$1`, id, title)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *postsRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
