package withdrawal

import (
	"context"

	"pawncarry/internal/models"
	"pawncarry/internal/money"
)

// Service is the withdrawal engine contract.
type Service interface {
	// RequestWithdrawal validates the amount, places a hold on the user's
	// wallet and appends a Pending transaction. Returns the created
	// transaction and the wallet's new balance.
	RequestWithdrawal(ctx context.Context, userID uint, amount money.Amount) (models.Transaction, money.Amount, error)

	// SetStatus finalizes a transaction as Completed or Rejected. Rejecting
	// credits the hold back to the wallet. Re-submitting the current
	// terminal status succeeds as a no-op without side effects.
	SetStatus(ctx context.Context, id uint, status models.TransactionStatus) (models.Transaction, error)
}

// UserResolver looks up the identity owning a wallet. Implemented by the
// user service; the engine only needs existence checks.
type UserResolver interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// NotificationSink receives fire-and-forget event messages for a user. The
// engine emits events but never stores or trims them.
type NotificationSink interface {
	Emit(ctx context.Context, userID uint, text string)
}
