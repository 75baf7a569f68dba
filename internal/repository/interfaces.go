package repository

import (
	"context"
	"time"

	"technews/internal/models"
)

type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Update applies the given fields and reports rows affected (0 or 1).
	Update(ctx context.Context, u models.User) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PostFilter narrows ListDetails; a nil UserID means all posts.
type PostFilter struct {
	UserID *int64
}

type Posts interface {
	Create(ctx context.Context, title, postURL string, userID int64) (models.Post, error)
	// GetDetail returns the post joined with author username, derived
	// vote count and comments (each with its author's username).
	GetDetail(ctx context.Context, id int64) (models.PostDetail, error)
	ListDetails(ctx context.Context, f PostFilter) ([]models.PostDetail, error)
	UpdateTitle(ctx context.Context, id int64, title string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type Votes interface {
	// Create inserts a new vote row unconditionally; the same user may
	// vote on the same post more than once.
	Create(ctx context.Context, userID, postID int64) (models.Vote, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}

type Comments interface {
	Create(ctx context.Context, text string, userID, postID int64) (models.Comment, error)
	List(ctx context.Context) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	Touch(ctx context.Context, id string, lastSeen, expires time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID int64) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
