package models

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryUtilities     ExpenseCategory = "utilities"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryHealthcare    ExpenseCategory = "healthcare"
	CategoryEducation     ExpenseCategory = "education"
	CategoryOther         ExpenseCategory = "other"
)

// DefaultCategories is the candidate list offered to the classifier when the
// caller does not supply one.
var DefaultCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

type Expense struct {
	ID                  uuid.UUID       `db:"id"`
	UserID              uuid.UUID       `db:"user_id"`
	Amount              float64         `db:"amount"`
	Category            ExpenseCategory `db:"category"`
	Description         string          `db:"description"`
	Date                time.Time       `db:"date"` // calendar date, UTC midnight
	AISuggested         bool            `db:"ai_suggested"`
	RecurringTemplateID *uuid.UUID      `db:"recurring_template_id"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

// CategorySuggestion is the classifier output for a single expense description.
type CategorySuggestion struct {
	Category    ExpenseCategory `json:"category"`
	Confidence  int             `json:"confidence"` // 0-100
	Reasoning   string          `json:"reasoning"`
	AIGenerated bool            `json:"ai_generated"`
}
