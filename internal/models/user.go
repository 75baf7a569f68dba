package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const MinPasswordLen = 4

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidateNewUser checks registration input before the password is hashed.
func ValidateNewUser(username, email, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username is required")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) < MinPasswordLen {
		return errors.New("password must be at least 4 characters")
	}
	return nil
}

func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}
