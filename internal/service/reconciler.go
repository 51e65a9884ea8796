package service

import (
	"context"
	"time"

	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reconciler pushes recomputed progress into every active budget whose period
// contains a mutated expense's date. It is strictly best-effort: the expense
// write has already succeeded, so store failures here are logged and swallowed,
// never surfaced to the caller. Stored progress is a cache; the read path
// recomputes from the live expense set regardless.
type Reconciler struct {
	budgetRepo  *repository.BudgetRepository
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewReconciler(budgetRepo *repository.BudgetRepository, expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ReconcileUserDates recomputes and persists progress for all of the user's
// active budgets containing any of the given dates. An expense edit that moves
// the date passes both the old and the new date so budgets on either side are
// refreshed.
func (r *Reconciler) ReconcileUserDates(ctx context.Context, userID uuid.UUID, dates ...time.Time) {
	affected := make(map[uuid.UUID]*models.Budget)
	for _, date := range dates {
		budgets, err := r.budgetRepo.ListActiveContaining(ctx, userID, date)
		if err != nil {
			r.logger.Warn("Budget reconciliation lookup failed",
				zap.String("user_id", userID.String()),
				zap.String("date", models.FormatDate(date)),
				zap.Error(err),
			)
			return
		}
		for _, b := range budgets {
			affected[b.ID] = b
		}
	}

	if len(affected) == 0 {
		return
	}

	expenses, err := r.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		r.logger.Warn("Budget reconciliation expense fetch failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	now := r.now()
	updated := make([]*models.Budget, 0, len(affected))
	for _, budget := range affected {
		ComputeProgress(budget, expenses, now)
		budget.UpdatedAt = now
		updated = append(updated, budget)
	}

	if err := r.budgetRepo.UpdateProgressBatch(ctx, updated); err != nil {
		r.logger.Warn("Budget reconciliation write failed",
			zap.String("user_id", userID.String()),
			zap.Int("budgets", len(updated)),
			zap.Error(err),
		)
		return
	}

	r.logger.Debug("Budget progress reconciled",
		zap.String("user_id", userID.String()),
		zap.Int("budgets", len(updated)),
	)
}
