// Package middleware provides request authentication for the fiber app:
// bearer-token validation and the admin-only guard.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pawncarry/internal/models"
	"pawncarry/internal/utils"
)

// AuthMiddleware validates JWT bearer tokens and stores the claims in the
// request locals.
type AuthMiddleware struct {
	secret string
}

// NewAuthMiddleware creates middleware validating tokens signed with secret.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// Handler rejects requests without a valid bearer token.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), m.secret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// AdminOnly rejects requests whose claims do not carry the admin role. It
// must run after Handler.
func AdminOnly(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}
	if !claims.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied, admin only"})
	}
	return c.Next()
}
