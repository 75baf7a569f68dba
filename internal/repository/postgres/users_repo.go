package postgres

import (
	"context"
	"errors"

	"technews/internal/models"
	"technews/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

func (r *usersRepo) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash)
		 VALUES($1,$2,$3)
		 RETURNING id, username, email, password_hash, created_at, updated_at`,
		username, email, passwordHash,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, mapPgError(err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	return r.get(ctx, `WHERE id=$1`, id)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.get(ctx, `WHERE email=$1`, email)
}

func (r *usersRepo) get(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, repository.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET username=$2, email=$3, password_hash=$4, updated_at=now() WHERE id=$1`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	)
	if err != nil {
		return 0, mapPgError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *usersRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// mapPgError translates postgres constraint violations into the
// repository's sentinel errors.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return repository.ErrDuplicateEmail
		case "23503": // foreign_key_violation
			return repository.ErrNotFound
		}
	}
	return err
}
