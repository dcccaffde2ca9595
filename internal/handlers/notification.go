package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pawncarry/internal/services/notification"
)

// NotificationHandler serves a user's notification feed.
type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the authenticated user's notifications.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}
	return c.JSON(h.notifications.List(c.Context(), claims.UserID))
}
