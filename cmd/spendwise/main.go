package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spendwise/internal/api"
	"spendwise/internal/api/handlers"
	"spendwise/internal/repository"
	"spendwise/internal/service"
	"spendwise/pkg/auth"
	"spendwise/pkg/config"
	"spendwise/pkg/logger"
	"spendwise/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting spendwise service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	recurringRepo := repository.NewRecurringRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	classifier := service.NewClassifierService(ctx, &cfg.GigaChat, appLogger)
	defer classifier.Close()

	reconciler := service.NewReconciler(budgetRepo, expenseRepo, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, classifier, reconciler, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, appLogger)
	recurringService := service.NewRecurringService(recurringRepo, reconciler, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	budgetHandler := handlers.NewBudgetHandler(budgetService, appLogger)
	recurringHandler := handlers.NewRecurringHandler(recurringService, appLogger)

	app := api.SetupRouter(authHandler, expenseHandler, budgetHandler, recurringHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
