package user

import "errors"

// Service errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with that username or email already exists")
	ErrValidation   = errors.New("validation failed")
)
