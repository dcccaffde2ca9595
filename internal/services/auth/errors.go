package auth

import "errors"

// Service errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)
