package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"pawncarry/internal/models"
	"pawncarry/internal/services/wallet"
)

// dateLayout matches the display format the dashboard expects.
const dateLayout = "Jan 2, 2006"

// transactionView shapes a transaction for API responses.
func transactionView(t models.Transaction) fiber.Map {
	return fiber.Map{
		"id":        t.ID,
		"userId":    t.UserID,
		"type":      t.Type,
		"amount":    t.Amount,
		"fee":       t.Fee,
		"total":     t.Total,
		"date":      t.CreatedAt.Format(dateLayout),
		"status":    t.Status,
		"reference": t.Reference,
	}
}

// userView shapes a user plus current balance for admin responses.
func userView(ctx context.Context, u *models.User, wallets wallet.Store) (fiber.Map, error) {
	balance, err := wallets.Balance(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"balance":  balance,
	}, nil
}

// claimsFromCtx returns the authenticated claims set by the auth middleware.
func claimsFromCtx(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok
}
