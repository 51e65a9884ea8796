package service

import (
	"testing"
	"time"

	"spendwise/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testBudget(categories []models.CategoryBudget, alerts []models.BudgetAlert) *models.Budget {
	return &models.Budget{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "June groceries",
		Type:   models.BudgetTypeMonthly,
		Period: models.Period{
			StartDate: date("2025-06-01"),
			EndDate:   date("2025-06-30"),
		},
		CategoryBudgets: categories,
		Alerts:          alerts,
		IsActive:        true,
	}
}

func expense(category models.ExpenseCategory, amount float64, day string) *models.Expense {
	return &models.Expense{
		ID:       uuid.New(),
		Amount:   amount,
		Category: category,
		Date:     date(day),
	}
}

func TestComputeProgressThresholdScenario(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 100}},
		[]models.BudgetAlert{{Category: models.CategoryFood, Threshold: 80}},
	)
	expenses := []*models.Expense{
		expense(models.CategoryFood, 85, "2025-06-10"),
	}

	now := time.Now()
	ComputeProgress(budget, expenses, now)

	require.Len(t, budget.CategoryBudgets, 1)
	cb := budget.CategoryBudgets[0]
	assert.Equal(t, 85.00, cb.Spent)
	assert.Equal(t, 15.00, cb.Remaining)
	assert.Equal(t, 85.00, cb.Percentage)

	require.Len(t, budget.Alerts, 1)
	assert.True(t, budget.Alerts[0].Triggered)
	require.NotNil(t, budget.Alerts[0].TriggeredAt)
	assert.Equal(t, now, *budget.Alerts[0].TriggeredAt)
}

func TestComputeProgressPeriodBoundsInclusive(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 100}},
		nil,
	)
	expenses := []*models.Expense{
		expense(models.CategoryFood, 10, "2025-06-01"), // start bound
		expense(models.CategoryFood, 20, "2025-06-30"), // end bound
		expense(models.CategoryFood, 99, "2025-05-31"), // before period
		expense(models.CategoryFood, 99, "2025-07-01"), // after period
	}

	ComputeProgress(budget, expenses, time.Now())

	assert.Equal(t, 30.00, budget.CategoryBudgets[0].Spent)
	assert.Equal(t, 30.00, budget.TotalSpent)
}

func TestComputeProgressZeroLimit(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryTransport, Limit: 0}},
		nil,
	)
	expenses := []*models.Expense{
		expense(models.CategoryTransport, 42, "2025-06-15"),
	}

	ComputeProgress(budget, expenses, time.Now())

	cb := budget.CategoryBudgets[0]
	assert.Equal(t, 42.00, cb.Spent)
	assert.Equal(t, -42.00, cb.Remaining)
	assert.Equal(t, 0.00, cb.Percentage)
}

func TestComputeProgressUnbudgetedCategoriesExcludedFromTotals(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 100}},
		nil,
	)
	expenses := []*models.Expense{
		expense(models.CategoryFood, 50, "2025-06-10"),
		expense(models.CategoryEntertainment, 500, "2025-06-10"), // not budgeted
	}

	ComputeProgress(budget, expenses, time.Now())

	assert.Equal(t, 50.00, budget.TotalSpent)
	assert.Equal(t, 50.00, budget.TotalRemaining)
}

func TestComputeProgressRemainingGoesNegative(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 100}},
		nil,
	)
	expenses := []*models.Expense{
		expense(models.CategoryFood, 150, "2025-06-10"),
	}

	ComputeProgress(budget, expenses, time.Now())

	assert.Equal(t, -50.00, budget.CategoryBudgets[0].Remaining)
	assert.Equal(t, 150.00, budget.CategoryBudgets[0].Percentage)
	assert.Equal(t, -50.00, budget.TotalRemaining)
}

func TestComputeProgressRoundsDerivedFields(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 10}},
		nil,
	)
	// 0.1+0.2 accumulates float noise without rounding.
	expenses := []*models.Expense{
		expense(models.CategoryFood, 0.1, "2025-06-10"),
		expense(models.CategoryFood, 0.2, "2025-06-11"),
	}

	ComputeProgress(budget, expenses, time.Now())

	assert.Equal(t, 0.30, budget.CategoryBudgets[0].Spent)
	assert.Equal(t, 9.70, budget.CategoryBudgets[0].Remaining)
	assert.Equal(t, 3.00, budget.CategoryBudgets[0].Percentage)
	assert.Equal(t, 0.30, budget.TotalSpent)
}

func TestComputeProgressTotalLimitEqualsSum(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{
			{Category: models.CategoryFood, Limit: 100},
			{Category: models.CategoryTransport, Limit: 50.5},
			{Category: models.CategoryUtilities, Limit: 200},
		},
		nil,
	)

	ComputeProgress(budget, nil, time.Now())

	assert.Equal(t, 350.50, budget.TotalLimit)
	assert.Equal(t, 350.50, budget.TotalRemaining)
}

func TestComputeProgressAlertLatches(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 100}},
		[]models.BudgetAlert{{Category: models.CategoryFood, Threshold: 80}},
	)

	firstRecompute := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	ComputeProgress(budget, []*models.Expense{
		expense(models.CategoryFood, 90, "2025-06-10"),
	}, firstRecompute)

	require.True(t, budget.Alerts[0].Triggered)
	require.NotNil(t, budget.Alerts[0].TriggeredAt)

	// Spending drops below the threshold; the latch and timestamp must hold.
	ComputeProgress(budget, []*models.Expense{
		expense(models.CategoryFood, 10, "2025-06-10"),
	}, firstRecompute.Add(24*time.Hour))

	assert.Equal(t, 10.00, budget.CategoryBudgets[0].Spent)
	assert.True(t, budget.Alerts[0].Triggered)
	assert.Equal(t, firstRecompute, *budget.Alerts[0].TriggeredAt)
}

func TestComputeProgressAlertNotTriggeredBelowThreshold(t *testing.T) {
	budget := testBudget(
		[]models.CategoryBudget{{Category: models.CategoryFood, Limit: 100}},
		[]models.BudgetAlert{{Category: models.CategoryFood, Threshold: 80}},
	)

	ComputeProgress(budget, []*models.Expense{
		expense(models.CategoryFood, 79.99, "2025-06-10"),
	}, time.Now())

	assert.False(t, budget.Alerts[0].Triggered)
	assert.Nil(t, budget.Alerts[0].TriggeredAt)
}
