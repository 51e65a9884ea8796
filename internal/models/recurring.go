package models

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// RecurringTemplate periodically produces concrete expense records.
// NextOccurrence is the authoritative cursor: it always equals one frequency
// step past LastGenerated (or past StartDate when nothing has been generated).
type RecurringTemplate struct {
	ID             uuid.UUID       `db:"id"`
	UserID         uuid.UUID       `db:"user_id"`
	TemplateName   string          `db:"template_name"`
	Amount         float64         `db:"amount"`
	Category       ExpenseCategory `db:"category"`
	Description    string          `db:"description"`
	Frequency      Frequency       `db:"frequency"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        *time.Time      `db:"end_date"`
	NextOccurrence time.Time       `db:"next_occurrence"`
	LastGenerated  *time.Time      `db:"last_generated"`
	IsActive       bool            `db:"is_active"`
	AutoGenerate   bool            `db:"auto_generate"`
	ReminderDays   int             `db:"reminder_days"` // 0-30
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
