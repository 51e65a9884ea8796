// Command sweep runs one recurring-expense sweep and exits. It is meant to be
// invoked by a single external cron trigger; the sweep itself commits
// atomically and advances cursors transactionally, so an accidental re-run the
// same day generates no duplicates.
package main

import (
	"context"
	"log"
	"time"

	"spendwise/internal/repository"
	"spendwise/internal/service"
	"spendwise/pkg/config"
	"spendwise/pkg/logger"
	"spendwise/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	recurringRepo := repository.NewRecurringRepository(db, appLogger)

	reconciler := service.NewReconciler(budgetRepo, expenseRepo, appLogger)
	recurringService := service.NewRecurringService(recurringRepo, reconciler, appLogger)

	generated, err := recurringService.SweepDue(ctx, time.Now())
	if err != nil {
		appLogger.Fatal("Sweep failed", zap.Error(err))
	}

	appLogger.Info("Sweep finished", zap.Int("generated", generated))
}
