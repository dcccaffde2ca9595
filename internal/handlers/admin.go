package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pawncarry/internal/models"
	"pawncarry/internal/money"
	"pawncarry/internal/services/ledger"
	"pawncarry/internal/services/user"
	"pawncarry/internal/services/wallet"
	"pawncarry/internal/services/withdrawal"
)

// AdminHandler serves the administrative user and transaction endpoints.
type AdminHandler struct {
	users   user.Service
	wallets wallet.Store
	ledger  ledger.Service
	engine  withdrawal.Service
	logger  *zap.Logger
}

func NewAdminHandler(users user.Service, wallets wallet.Store, txLedger ledger.Service, engine withdrawal.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, wallets: wallets, ledger: txLedger, engine: engine, logger: logger}
}

// ListUsers returns every user with their current balance.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load users"})
	}

	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		view, err := userView(c.Context(), &users[i], h.wallets)
		if err != nil {
			h.logger.Error("load balance failed", zap.Error(err), zap.Uint("user_id", users[i].ID))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load users"})
		}
		out = append(out, view)
	}
	return c.JSON(out)
}

// CreateUser creates a user account with an optional opening balance.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input struct {
		Username string           `json:"username"`
		Email    string           `json:"email"`
		Password string           `json:"password"`
		Role     string           `json:"role"`
		Balance  *decimal.Decimal `json:"balance"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	opening := money.Zero
	if input.Balance != nil {
		opening = money.FromDecimal(*input.Balance)
	}

	created, err := h.users.Create(c.Context(), user.CreateInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
		Balance:  opening,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, user.ErrUserExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User with that username or email already exists"})
		}
		h.logger.Error("create user failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
	}

	view, err := userView(c.Context(), created, h.wallets)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create user"})
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetUser returns a single user with balance.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	u, err := h.users.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	view, err := userView(c.Context(), u, h.wallets)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load user"})
	}
	return c.JSON(view)
}

// UpdateUser applies an administrative update; a balance field writes the
// wallet directly without a ledger record.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}

	var input struct {
		Username *string          `json:"username"`
		Email    *string          `json:"email"`
		Role     *string          `json:"role"`
		Balance  *decimal.Decimal `json:"balance"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	update := user.UpdateInput{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
	}
	if input.Balance != nil {
		balance := money.FromDecimal(*input.Balance)
		update.Balance = &balance
	}

	updated, err := h.users.Update(c.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		case errors.Is(err, user.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		h.logger.Error("update user failed", zap.Error(err), zap.Uint("user_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user"})
	}

	view, err := userView(c.Context(), updated, h.wallets)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load user"})
	}
	return c.JSON(view)
}

// ListTransactions returns the full ledger, newest first.
func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	transactions, err := h.ledger.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load transactions"})
	}

	out := make([]fiber.Map, len(transactions))
	for i, t := range transactions {
		out[i] = transactionView(t)
	}
	return c.JSON(out)
}

// SetTransactionStatus finalizes a withdrawal as Completed or Rejected.
func (h *AdminHandler) SetTransactionStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid transaction id"})
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	tx, err := h.engine.SetStatus(c.Context(), id, models.TransactionStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, withdrawal.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid status"})
		case errors.Is(err, ledger.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Transaction not found"})
		case errors.Is(err, ledger.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Transaction already finalized"})
		}
		h.logger.Error("set status failed", zap.Error(err), zap.Uint("transaction_id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update transaction"})
	}

	return c.JSON(transactionView(tx))
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
