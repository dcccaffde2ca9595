package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)
