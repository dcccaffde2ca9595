// Package handlers translates HTTP requests into core operations and maps
// service errors onto status codes. No business rules live here.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pawncarry/internal/services/auth"
	"pawncarry/internal/services/user"
	"pawncarry/internal/services/wallet"
)

// AuthHandler serves login and the current-user profile.
type AuthHandler struct {
	authService auth.Service
	users       user.Service
	wallets     wallet.Store
}

func NewAuthHandler(authService auth.Service, users user.Service, wallets wallet.Store) *AuthHandler {
	return &AuthHandler{authService: authService, users: users, wallets: wallets}
}

// Login authenticates a username/password pair and returns a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if input.Username == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username and password are required"})
	}

	_, token, err := h.authService.Login(c.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Authentication failed"})
	}

	return c.JSON(fiber.Map{"token": token})
}

// Me returns the authenticated user's profile with wallet balance.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	u, err := h.users.Get(c.Context(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	balance, err := h.wallets.Balance(c.Context(), u.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load wallet"})
	}

	return c.JSON(fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     u.Role,
		"wallet":   fiber.Map{"balance": balance},
	})
}
