package postgres

import (
	repo "technews/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users     repo.Users
	Posts     repo.Posts
	Votes     repo.Votes
	Comments  repo.Comments
	Sessions  repo.Sessions
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Posts:     &postsRepo{pool},
		Votes:     &votesRepo{pool},
		Comments:  &commentsRepo{pool},
		Sessions:  &sessionsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
