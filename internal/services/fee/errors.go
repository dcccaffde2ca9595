package fee

import "errors"

// Service errors
var (
	ErrInvalidAmount = errors.New("invalid amount")
)
