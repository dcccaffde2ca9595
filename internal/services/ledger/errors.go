package ledger

import "errors"

// Service errors
var (
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidTransition = errors.New("transaction already finalized")
)
