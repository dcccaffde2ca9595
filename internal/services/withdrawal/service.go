// Package withdrawal orchestrates the lifecycle of a withdrawal request:
// fee computation, the atomic wallet hold, ledger append, and the
// Pending -> Completed/Rejected state machine. All transition rules live
// here and in the ledger; handlers never touch wallet balances directly.
package withdrawal

import (
	"context"
	"fmt"

	"pawncarry/internal/models"
	"pawncarry/internal/money"
	"pawncarry/internal/services/fee"
	"pawncarry/internal/services/ledger"
	"pawncarry/internal/services/wallet"
)

type service struct {
	users   UserResolver
	wallets wallet.Store
	ledger  ledger.Service
	policy  fee.Policy
	sink    NotificationSink
}

// NewService creates the withdrawal engine. All collaborators are required.
func NewService(users UserResolver, wallets wallet.Store, txLedger ledger.Service, policy fee.Policy, sink NotificationSink) Service {
	if users == nil {
		panic("user resolver is required")
	}
	if wallets == nil {
		panic("wallet store is required")
	}
	if txLedger == nil {
		panic("ledger is required")
	}
	if sink == nil {
		panic("notification sink is required")
	}
	return &service{
		users:   users,
		wallets: wallets,
		ledger:  txLedger,
		policy:  policy,
		sink:    sink,
	}
}

func (s *service) RequestWithdrawal(ctx context.Context, userID uint, amount money.Amount) (models.Transaction, money.Amount, error) {
	feeAmount, total, err := s.policy.Compute(amount)
	if err != nil {
		return models.Transaction{}, 0, fmt.Errorf("compute fee: %w", err)
	}

	if _, err := s.users.Get(ctx, userID); err != nil {
		return models.Transaction{}, 0, ErrUserNotFound
	}

	newBalance, ok, err := s.wallets.TryReserve(ctx, userID, total)
	if err != nil {
		return models.Transaction{}, 0, fmt.Errorf("reserve funds: %w", err)
	}
	if !ok {
		return models.Transaction{}, 0, ErrInsufficientBalance
	}

	tx, err := s.ledger.Append(ctx, models.Transaction{
		UserID: userID,
		Type:   models.TransactionTypeWithdrawal,
		Amount: amount,
		Fee:    feeAmount,
		Total:  total,
		Status: models.StatusPending,
	})
	if err != nil {
		// Undo the hold so a failed append never strands funds.
		s.wallets.Credit(ctx, userID, total)
		return models.Transaction{}, 0, fmt.Errorf("append transaction: %w", err)
	}

	s.sink.Emit(ctx, userID, fmt.Sprintf("Withdrawal $%s requested.", amount))

	return tx, newBalance, nil
}

func (s *service) SetStatus(ctx context.Context, id uint, status models.TransactionStatus) (models.Transaction, error) {
	if status != models.StatusCompleted && status != models.StatusRejected {
		return models.Transaction{}, ErrInvalidStatus
	}

	tx, changed, err := s.ledger.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.Transaction{}, err
	}
	if !changed {
		// Idempotent retry of the current status: no credit, no notification.
		return tx, nil
	}

	if status == models.StatusRejected {
		// The hold removed Total at request time; rejecting returns it exactly.
		if _, err := s.wallets.Credit(ctx, tx.UserID, tx.Total); err != nil {
			return models.Transaction{}, fmt.Errorf("reverse hold: %w", err)
		}
	}

	s.sink.Emit(ctx, tx.UserID, fmt.Sprintf("Withdrawal %s %s.", tx.Reference, status))

	return tx, nil
}
