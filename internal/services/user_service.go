package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"technews/internal/auth"
	"technews/internal/metrics"
	"technews/internal/models"
	repo "technews/internal/repository"
)

type UserService struct {
	users repo.Users
	audit *AuditService
}

func NewUserService(users repo.Users, audit *AuditService) *UserService {
	return &UserService{users: users, audit: audit}
}

// Register validates the input, hashes the password and stores the new
// user. The plaintext never reaches the repository.
func (s *UserService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := models.ValidateNewUser(username, email, password); err != nil {
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		return models.User{}, err
	}
	s.audit.Record("user", u.ID, u.ID, "register")
	return u, nil
}

// Authenticate verifies a login. An unknown email surfaces as
// repository.ErrNotFound, a wrong password as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("bad_email").Inc()
		}
		return models.User{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return models.User{}, ErrInvalidCredentials
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.audit.Record("user", u.ID, u.ID, "login")
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUserInput carries the partial fields of a profile update; nil
// means "leave unchanged". A new password is rehashed before storage.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (int64, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return 0, fmt.Errorf("%w: username is required", ErrValidation)
		}
		u.Username = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if err := models.ValidateEmail(email); err != nil {
			return 0, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		u.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < models.MinPasswordLen {
			return 0, fmt.Errorf("%w: password must be at least 4 characters", ErrValidation)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return 0, err
		}
		u.PasswordHash = hash
	}

	n, err := s.users.Update(ctx, u)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.audit.Record("user", id, id, "update")
	}
	return n, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.users.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.audit.Record("user", id, id, "delete")
	}
	return n, nil
}
