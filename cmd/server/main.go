// Package main is the entry point for the payout API server. It builds the
// in-memory stores, wires the withdrawal engine to its collaborators, seeds
// the bootstrap accounts, and starts the HTTP server.
package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"pawncarry/internal/config"
	"pawncarry/internal/models"
	"pawncarry/internal/money"
	"pawncarry/internal/routes"
	"pawncarry/internal/services/auth"
	"pawncarry/internal/services/fee"
	"pawncarry/internal/services/ledger"
	"pawncarry/internal/services/notification"
	"pawncarry/internal/services/user"
	"pawncarry/internal/services/wallet"
	"pawncarry/internal/services/withdrawal"
)

func main() {
	config.LoadEnv()

	log := newLogger()
	defer log.Sync()

	// Stores and collaborators
	wallets := wallet.NewMemoryStore()
	txLedger := ledger.NewMemoryLedger()
	notifications := notification.NewService(log)
	users := user.NewService(wallets, notifications)

	// Core engine
	feePolicy := fee.NewPolicy(config.GetDecimalEnv("FEE_RATE", "0.05"))
	engine := withdrawal.NewService(users, wallets, txLedger, feePolicy, notifications)

	jwtSecret := config.GetEnv("JWT_SECRET", "your_secret_key_here")
	authService := auth.NewService(users, jwtSecret)

	seedUsers(users, log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Auth:          authService,
		Users:         users,
		Wallets:       wallets,
		Ledger:        txLedger,
		Engine:        engine,
		Notifications: notifications,
		JWTSecret:     jwtSecret,
		Logger:        log,
	})

	port := config.GetEnv("PORT", "5000")
	log.Info("server starting", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if config.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return log
}

// seedUsers creates the bootstrap admin and member accounts. Balances here
// are opening balances, not ledger-tracked operations.
func seedUsers(users user.Service, log *zap.Logger) {
	ctx := context.Background()
	seeds := []user.CreateInput{
		{
			Username: "admin",
			Email:    "admin@test.com",
			Password: config.GetEnv("ADMIN_PASSWORD", "admin123"),
			Role:     models.RoleAdmin,
			Balance:  money.MustParse("1000"),
		},
		{
			Username: "booster1",
			Email:    "booster1@test.com",
			Password: config.GetEnv("BOOSTER_PASSWORD", "booster123"),
			Role:     models.RoleMember,
			Balance:  money.MustParse("500"),
		},
	}
	for _, seed := range seeds {
		if _, err := users.Create(ctx, seed); err != nil {
			log.Fatal("seed user failed", zap.String("username", seed.Username), zap.Error(err))
		}
	}
}
