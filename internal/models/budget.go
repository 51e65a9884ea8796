package models

import (
	"time"

	"github.com/google/uuid"
)

type BudgetType string

const (
	BudgetTypeMonthly BudgetType = "monthly"
	BudgetTypeWeekly  BudgetType = "weekly"
	BudgetTypeCustom  BudgetType = "custom"
)

// Period is a closed calendar-date interval. EndDate must be after StartDate.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Contains reports whether date falls within the period, bounds inclusive.
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// CategoryBudget holds one category limit. Spent, Remaining and Percentage are
// derived from the live expense set on every progress read; the stored values
// are a best-effort cache, never authoritative.
type CategoryBudget struct {
	Category   ExpenseCategory `json:"category"`
	Limit      float64         `json:"limit"`
	Spent      float64         `json:"spent"`
	Remaining  float64         `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// BudgetAlert is a one-way latch: once Triggered is set it stays set, with its
// original TriggeredAt, until the alert itself is reconfigured.
type BudgetAlert struct {
	Category    ExpenseCategory `json:"category"`
	Threshold   float64         `json:"threshold"` // percentage, 0-100
	Triggered   bool            `json:"triggered"`
	TriggeredAt *time.Time      `json:"triggered_at,omitempty"`
}

type Budget struct {
	ID              uuid.UUID        `db:"id"`
	UserID          uuid.UUID        `db:"user_id"`
	Name            string           `db:"name"`
	Type            BudgetType       `db:"type"`
	Period          Period           `db:"period"`
	CategoryBudgets []CategoryBudget `db:"category_budgets"`
	TotalLimit      float64          `db:"total_limit"`
	TotalSpent      float64          `db:"total_spent"`
	TotalRemaining  float64          `db:"total_remaining"`
	Alerts          []BudgetAlert    `db:"alerts"`
	IsActive        bool             `db:"is_active"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`
}
