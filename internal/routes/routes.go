// Package routes defines the API routing configuration: every HTTP route,
// its handler, and the middleware protecting it.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pawncarry/internal/handlers"
	"pawncarry/internal/middleware"
	"pawncarry/internal/services/auth"
	"pawncarry/internal/services/ledger"
	"pawncarry/internal/services/notification"
	"pawncarry/internal/services/user"
	"pawncarry/internal/services/wallet"
	"pawncarry/internal/services/withdrawal"
)

// Dependencies carries the constructed services the routes are wired to.
type Dependencies struct {
	Auth          auth.Service
	Users         user.Service
	Wallets       wallet.Store
	Ledger        ledger.Service
	Engine        withdrawal.Service
	Notifications *notification.Service
	JWTSecret     string
	Logger        *zap.Logger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Users, deps.Wallets)
	txHandler := handlers.NewTransactionHandler(deps.Engine, deps.Ledger, deps.Logger)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	adminHandler := handlers.NewAdminHandler(deps.Users, deps.Wallets, deps.Ledger, deps.Engine, deps.Logger)

	authMW := middleware.NewAuthMiddleware(deps.JWTSecret)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/auth/login", authHandler.Login)

	// Authenticated endpoints
	api.Get("/auth/me", authMW.Handler, authHandler.Me)
	api.Get("/notifications", authMW.Handler, notificationHandler.List)
	api.Get("/transactions", authMW.Handler, txHandler.ListMine)
	api.Post("/transactions/withdraw", authMW.Handler, txHandler.Withdraw)

	// Admin endpoints
	admin := api.Group("/admin", authMW.Handler, middleware.AdminOnly)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Get("/transactions", adminHandler.ListTransactions)
	admin.Put("/transactions/:id", adminHandler.SetTransactionStatus)
}
