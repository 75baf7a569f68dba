package services

import "errors"

// ErrValidation marks malformed or missing input; wrapped with the
// concrete reason.
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials is returned when a login password does not
// match the stored hash.
var ErrInvalidCredentials = errors.New("invalid credentials")
