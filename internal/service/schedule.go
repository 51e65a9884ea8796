package service

import (
	"errors"
	"time"

	"spendwise/internal/models"

	"github.com/google/uuid"
)

var ErrInvalidFrequency = errors.New("invalid frequency")

// Advance returns the occurrence one frequency step after date. Month and year
// steps follow time.AddDate calendar rollover: 2025-01-31 plus one month lands
// on 2025-03-03 because February 2025 has no 31st. That rollover is accepted,
// not special-cased.
func Advance(date time.Time, frequency models.Frequency) (time.Time, error) {
	switch frequency {
	case models.FrequencyDaily:
		return date.AddDate(0, 0, 1), nil
	case models.FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case models.FrequencyBiweekly:
		return date.AddDate(0, 0, 14), nil
	case models.FrequencyMonthly:
		return date.AddDate(0, 1, 0), nil
	case models.FrequencyYearly:
		return date.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, ErrInvalidFrequency
	}
}

// nextOccurrenceAnchor is the date the cursor advances from: the last real
// generation when one exists, otherwise the template's start date.
func nextOccurrenceAnchor(t *models.RecurringTemplate) time.Time {
	if t.LastGenerated != nil {
		return *t.LastGenerated
	}
	return t.StartDate
}

// materialize builds the concrete expense for the template's current cursor
// and advances the cursor by one step. The template must have a valid
// frequency; nothing is mutated when Advance fails.
func materialize(t *models.RecurringTemplate, now time.Time) (*models.Expense, error) {
	next, err := Advance(t.NextOccurrence, t.Frequency)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:                  uuid.New(),
		UserID:              t.UserID,
		Amount:              t.Amount,
		Category:            t.Category,
		Description:         t.Description,
		Date:                t.NextOccurrence,
		AISuggested:         false,
		RecurringTemplateID: &t.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	occurred := t.NextOccurrence
	t.LastGenerated = &occurred
	t.NextOccurrence = next
	t.UpdatedAt = now
	return expense, nil
}

// sweepPlan is the outcome of planning one sweep run over the due templates:
// expenses to insert and templates to update, applied together in one
// transaction so a mid-sweep failure applies nothing.
type sweepPlan struct {
	expenses  []*models.Expense
	templates []*models.RecurringTemplate
}

// planSweep walks the due templates (isActive, autoGenerate,
// nextOccurrence <= today — the caller's query guarantees that) and decides
// per template: expired ones (endDate set and before today) are flipped
// inactive without generating, the rest are materialized and advanced.
func planSweep(templates []*models.RecurringTemplate, today, now time.Time) (*sweepPlan, error) {
	plan := &sweepPlan{}
	for _, t := range templates {
		if t.EndDate != nil && t.EndDate.Before(today) {
			t.IsActive = false
			t.UpdatedAt = now
			plan.templates = append(plan.templates, t)
			continue
		}
		expense, err := materialize(t, now)
		if err != nil {
			return nil, err
		}
		plan.expenses = append(plan.expenses, expense)
		plan.templates = append(plan.templates, t)
	}
	return plan, nil
}
