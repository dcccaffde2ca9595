package models

import (
	"time"

	"pawncarry/internal/money"
)

// Transaction types
const (
	TransactionTypeWithdrawal = "Withdrawal"
)

// TransactionStatus is the closed set of states a transaction may hold.
type TransactionStatus string

// Transaction statuses. A transaction starts Pending and moves exactly once
// to Completed or Rejected; both are terminal.
const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusRejected  TransactionStatus = "Rejected"
)

// Valid reports whether s is a known status value.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted out of s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Transaction is one withdrawal attempt recorded in the ledger. Amount, Fee
// and Total are locked at request time; Total always equals Amount + Fee and
// is never recomputed. Only Status mutates after append.
type Transaction struct {
	ID        uint              `json:"id"`
	UserID    uint              `json:"userId"`
	Type      string            `json:"type"`
	Amount    money.Amount      `json:"amount"`
	Fee       money.Amount      `json:"fee"`
	Total     money.Amount      `json:"total"`
	Status    TransactionStatus `json:"status"`
	Reference string            `json:"reference"`
	CreatedAt time.Time         `json:"createdAt"`
}
