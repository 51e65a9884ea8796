package service

import (
	"math"
	"time"

	"spendwise/internal/models"
)

// round2 rounds a currency value to 2 decimal places. Applied to every
// derived field independently so float noise never leaks into output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeProgress recomputes the derived spent/remaining/percentage fields of
// budget from the user's live expense set. Pure: mutates and returns budget,
// touches nothing else; persisting the result is the caller's concern.
//
// Expenses outside [Period.StartDate, Period.EndDate] (bounds inclusive) are
// ignored. Totals cover budgeted categories only: expenses in categories the
// budget does not track are excluded from TotalSpent. Alerts latch one-way:
// a triggered alert keeps its Triggered flag and original TriggeredAt even if
// the percentage later drops below the threshold.
func ComputeProgress(budget *models.Budget, expenses []*models.Expense, now time.Time) *models.Budget {
	spentByCategory := make(map[models.ExpenseCategory]float64)
	for _, e := range expenses {
		if !budget.Period.Contains(e.Date) {
			continue
		}
		spentByCategory[e.Category] += e.Amount
	}

	totalLimit := 0.0
	totalSpent := 0.0
	for i := range budget.CategoryBudgets {
		cb := &budget.CategoryBudgets[i]
		spent := round2(spentByCategory[cb.Category])
		cb.Spent = spent
		cb.Remaining = round2(cb.Limit - spent)
		if cb.Limit == 0 {
			cb.Percentage = 0
		} else {
			cb.Percentage = round2(spent / cb.Limit * 100)
		}
		totalLimit += cb.Limit
		totalSpent += cb.Spent
	}

	budget.TotalLimit = round2(totalLimit)
	budget.TotalSpent = round2(totalSpent)
	budget.TotalRemaining = round2(budget.TotalLimit - budget.TotalSpent)

	for i := range budget.Alerts {
		alert := &budget.Alerts[i]
		if alert.Triggered {
			continue // latched, TriggeredAt preserved
		}
		for _, cb := range budget.CategoryBudgets {
			if cb.Category == alert.Category && cb.Percentage >= alert.Threshold {
				alert.Triggered = true
				triggeredAt := now
				alert.TriggeredAt = &triggeredAt
				break
			}
		}
	}

	return budget
}
