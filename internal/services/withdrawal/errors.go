package withdrawal

import "errors"

// Service errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidStatus       = errors.New("invalid transaction status")
)
