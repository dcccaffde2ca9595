package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pawncarry/internal/money"
	"pawncarry/internal/services/fee"
	"pawncarry/internal/services/ledger"
	"pawncarry/internal/services/withdrawal"
)

// TransactionHandler serves a user's own withdrawal operations.
type TransactionHandler struct {
	engine withdrawal.Service
	ledger ledger.Service
	logger *zap.Logger
}

func NewTransactionHandler(engine withdrawal.Service, txLedger ledger.Service, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{engine: engine, ledger: txLedger, logger: logger}
}

// ListMine returns the authenticated user's transactions, newest first.
func (h *TransactionHandler) ListMine(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	transactions, err := h.ledger.ListByUser(c.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list transactions failed", zap.Error(err), zap.Uint("user_id", claims.UserID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load transactions"})
	}

	out := make([]fiber.Map, len(transactions))
	for i, t := range transactions {
		out[i] = transactionView(t)
	}
	return c.JSON(out)
}

// Withdraw requests a withdrawal for the authenticated user.
func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid amount"})
	}

	tx, newBalance, err := h.engine.RequestWithdrawal(c.Context(), claims.UserID, money.FromDecimal(input.Amount))
	if err != nil {
		switch {
		case errors.Is(err, fee.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid amount"})
		case errors.Is(err, withdrawal.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		case errors.Is(err, withdrawal.ErrInsufficientBalance):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Insufficient balance"})
		}
		h.logger.Error("withdrawal failed", zap.Error(err), zap.Uint("user_id", claims.UserID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Withdrawal failed"})
	}

	return c.JSON(fiber.Map{
		"transaction": transactionView(tx),
		"wallet":      fiber.Map{"balance": newBalance},
	})
}
