package service

import (
	"testing"
	"time"

	"spendwise/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(frequency models.Frequency, next string) *models.RecurringTemplate {
	return &models.RecurringTemplate{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		TemplateName:   "Gym membership",
		Amount:         29.99,
		Category:       models.CategoryHealthcare,
		Description:    "monthly gym fee",
		Frequency:      frequency,
		StartDate:      date("2025-01-01"),
		NextOccurrence: date(next),
		IsActive:       true,
		AutoGenerate:   true,
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		frequency models.Frequency
		from      string
		want      string
	}{
		{"daily", models.FrequencyDaily, "2025-06-15", "2025-06-16"},
		{"weekly", models.FrequencyWeekly, "2025-06-15", "2025-06-22"},
		{"biweekly", models.FrequencyBiweekly, "2025-06-15", "2025-06-29"},
		{"monthly", models.FrequencyMonthly, "2025-06-15", "2025-07-15"},
		{"monthly across year end", models.FrequencyMonthly, "2025-12-15", "2026-01-15"},
		{"yearly", models.FrequencyYearly, "2025-06-15", "2026-06-15"},
		// Jan 31 + 1 month normalizes through Feb 31 to Mar 3 in 2025.
		{"monthly rollover", models.FrequencyMonthly, "2025-01-31", "2025-03-03"},
		{"monthly rollover leap year", models.FrequencyMonthly, "2024-01-31", "2024-03-02"},
		// Feb 29 + 1 year normalizes to Mar 1 on a non-leap target.
		{"yearly leap rollover", models.FrequencyYearly, "2024-02-29", "2025-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advance(date(tt.from), tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, models.FormatDate(got))
		})
	}
}

func TestAdvanceStrictlyIncreasing(t *testing.T) {
	frequencies := []models.Frequency{
		models.FrequencyDaily,
		models.FrequencyWeekly,
		models.FrequencyBiweekly,
		models.FrequencyMonthly,
		models.FrequencyYearly,
	}

	for _, frequency := range frequencies {
		current := date("2024-02-29")
		for i := 0; i < 36; i++ {
			next, err := Advance(current, frequency)
			require.NoError(t, err)
			assert.True(t, next.After(current), "%s: %s -> %s", frequency, models.FormatDate(current), models.FormatDate(next))
			current = next
		}
	}
}

func TestAdvanceUnknownFrequency(t *testing.T) {
	_, err := Advance(date("2025-06-15"), models.Frequency("fortnightly"))
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}

func TestMaterialize(t *testing.T) {
	template := testTemplate(models.FrequencyMonthly, "2025-01-31")
	now := time.Date(2025, 1, 31, 8, 0, 0, 0, time.UTC)

	expense, err := materialize(template, now)
	require.NoError(t, err)

	assert.Equal(t, template.UserID, expense.UserID)
	assert.Equal(t, 29.99, expense.Amount)
	assert.Equal(t, models.CategoryHealthcare, expense.Category)
	assert.Equal(t, "monthly gym fee", expense.Description)
	assert.Equal(t, "2025-01-31", models.FormatDate(expense.Date))
	assert.False(t, expense.AISuggested)
	require.NotNil(t, expense.RecurringTemplateID)
	assert.Equal(t, template.ID, *expense.RecurringTemplateID)

	require.NotNil(t, template.LastGenerated)
	assert.Equal(t, "2025-01-31", models.FormatDate(*template.LastGenerated))
	assert.Equal(t, "2025-03-03", models.FormatDate(template.NextOccurrence))
}

func TestMaterializeUnknownFrequencyLeavesTemplateUntouched(t *testing.T) {
	template := testTemplate(models.Frequency("bogus"), "2025-06-01")

	_, err := materialize(template, time.Now())

	assert.ErrorIs(t, err, ErrInvalidFrequency)
	assert.Nil(t, template.LastGenerated)
	assert.Equal(t, "2025-06-01", models.FormatDate(template.NextOccurrence))
}

func TestPlanSweepExpiredTemplateDeactivated(t *testing.T) {
	template := testTemplate(models.FrequencyMonthly, "2025-04-15")
	endDate := date("2025-05-01")
	template.EndDate = &endDate

	plan, err := planSweep([]*models.RecurringTemplate{template}, date("2025-06-01"), time.Now())
	require.NoError(t, err)

	assert.Empty(t, plan.expenses)
	require.Len(t, plan.templates, 1)
	assert.False(t, plan.templates[0].IsActive)
	assert.Nil(t, template.LastGenerated)
	assert.Equal(t, "2025-04-15", models.FormatDate(template.NextOccurrence))
}

func TestPlanSweepGeneratesAndAdvances(t *testing.T) {
	due := []*models.RecurringTemplate{
		testTemplate(models.FrequencyDaily, "2025-06-01"),
		testTemplate(models.FrequencyWeekly, "2025-05-28"),
	}

	plan, err := planSweep(due, date("2025-06-01"), time.Now())
	require.NoError(t, err)

	require.Len(t, plan.expenses, 2)
	require.Len(t, plan.templates, 2)
	assert.Equal(t, "2025-06-01", models.FormatDate(plan.expenses[0].Date))
	assert.Equal(t, "2025-06-02", models.FormatDate(plan.templates[0].NextOccurrence))
	assert.Equal(t, "2025-05-28", models.FormatDate(plan.expenses[1].Date))
	assert.Equal(t, "2025-06-04", models.FormatDate(plan.templates[1].NextOccurrence))
	assert.True(t, plan.templates[0].IsActive)
	assert.True(t, plan.templates[1].IsActive)
}

func TestNextOccurrenceAnchor(t *testing.T) {
	template := testTemplate(models.FrequencyMonthly, "2025-02-01")
	assert.Equal(t, template.StartDate, nextOccurrenceAnchor(template))

	lastGenerated := date("2025-03-01")
	template.LastGenerated = &lastGenerated
	assert.Equal(t, lastGenerated, nextOccurrenceAnchor(template))
}

func TestPlanSweepEndDateTodayStillGenerates(t *testing.T) {
	// Expiry requires endDate strictly before today.
	template := testTemplate(models.FrequencyMonthly, "2025-06-01")
	endDate := date("2025-06-01")
	template.EndDate = &endDate

	plan, err := planSweep([]*models.RecurringTemplate{template}, date("2025-06-01"), time.Now())
	require.NoError(t, err)

	assert.Len(t, plan.expenses, 1)
	assert.True(t, plan.templates[0].IsActive)
}
