package dto

import (
	"time"

	"spendwise/internal/models"
)

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" validate:"required,gte=0"`
	Category    string  `json:"category"` // empty means: ask the classifier
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
}

type UpdateExpenseRequest struct {
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

type ExpenseResponse struct {
	ID                  string  `json:"id"`
	Amount              float64 `json:"amount"`
	Category            string  `json:"category"`
	Description         string  `json:"description"`
	Date                string  `json:"date"`
	AISuggested         bool    `json:"ai_suggested"`
	RecurringTemplateID string  `json:"recurring_template_id,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type SuggestCategoryRequest struct {
	Description string   `json:"description" validate:"required"`
	Amount      float64  `json:"amount"`
	Categories  []string `json:"categories,omitempty"`
}

type SuggestCategoryResponse struct {
	Category    string `json:"category"`
	Confidence  int    `json:"confidence"`
	Reasoning   string `json:"reasoning"`
	AIGenerated bool   `json:"ai_generated"`
}

func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount,
		Category:    string(e.Category),
		Description: e.Description,
		Date:        models.FormatDate(e.Date),
		AISuggested: e.AISuggested,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
	if e.RecurringTemplateID != nil {
		resp.RecurringTemplateID = e.RecurringTemplateID.String()
	}
	return resp
}

func NewExpenseListResponse(expenses []*models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, NewExpenseResponse(e))
	}
	return out
}
