package service

import (
	"testing"

	"spendwise/internal/dto"
	"spendwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	period, err := parsePeriod("2025-06-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", models.FormatDate(period.StartDate))
	assert.Equal(t, "2025-06-30", models.FormatDate(period.EndDate))
}

func TestParsePeriodRejectsInvertedBounds(t *testing.T) {
	_, err := parsePeriod("2025-06-30", "2025-06-01")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = parsePeriod("2025-06-01", "2025-06-01")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParsePeriodRejectsMalformedDates(t *testing.T) {
	_, err := parsePeriod("06/01/2025", "2025-06-30")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = parsePeriod("2025-06-01", "June 30")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildCategoryBudgets(t *testing.T) {
	categories, err := buildCategoryBudgets([]dto.CategoryBudgetInput{
		{Category: "food", Limit: 100},
		{Category: "transport", Limit: 50},
	})
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, models.CategoryFood, categories[0].Category)
	assert.Equal(t, 100.00, categories[0].Limit)
	assert.Equal(t, 100.00, categories[0].Remaining)
	assert.Equal(t, 0.00, categories[0].Spent)

	assert.Equal(t, 150.00, sumLimits(categories))
}

func TestBuildCategoryBudgetsRejectsNegativeLimit(t *testing.T) {
	_, err := buildCategoryBudgets([]dto.CategoryBudgetInput{
		{Category: "food", Limit: -1},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildCategoryBudgetsRejectsEmptyList(t *testing.T) {
	_, err := buildCategoryBudgets(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildAlertsValidatesThreshold(t *testing.T) {
	_, err := buildAlerts([]dto.BudgetAlertInput{{Category: "food", Threshold: 101}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buildAlerts([]dto.BudgetAlertInput{{Category: "food", Threshold: -5}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	alerts, err := buildAlerts([]dto.BudgetAlertInput{{Category: "food", Threshold: 0}})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].Triggered)
	assert.Nil(t, alerts[0].TriggeredAt)
}
