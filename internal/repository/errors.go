package repository

import "errors"

// ErrNotFound is returned when no row matches the given identifier.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a user's email collides with an
// existing account (unique index on users.email).
var ErrDuplicateEmail = errors.New("email already registered")
