package dto

import (
	"time"

	"spendwise/internal/models"
)

type CreateRecurringRequest struct {
	TemplateName string  `json:"template_name" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gte=0"`
	Category     string  `json:"category" validate:"required"`
	Description  string  `json:"description"`
	Frequency    string  `json:"frequency" validate:"required,oneof=daily weekly biweekly monthly yearly"`
	StartDate    string  `json:"start_date" validate:"required"`
	EndDate      string  `json:"end_date,omitempty"`
	AutoGenerate bool    `json:"auto_generate"`
	ReminderDays int     `json:"reminder_days" validate:"gte=0,lte=30"`
}

type UpdateRecurringRequest struct {
	TemplateName *string  `json:"template_name,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Frequency    *string  `json:"frequency,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	AutoGenerate *bool    `json:"auto_generate,omitempty"`
	ReminderDays *int     `json:"reminder_days,omitempty"`
}

type RecurringResponse struct {
	ID             string  `json:"id"`
	TemplateName   string  `json:"template_name"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	Frequency      string  `json:"frequency"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date,omitempty"`
	NextOccurrence string  `json:"next_occurrence"`
	LastGenerated  string  `json:"last_generated,omitempty"`
	IsActive       bool    `json:"is_active"`
	AutoGenerate   bool    `json:"auto_generate"`
	ReminderDays   int     `json:"reminder_days"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// GenerateResponse is returned by the on-demand generate operation: the
// materialized expense plus the advanced template.
type GenerateResponse struct {
	Expense  ExpenseResponse   `json:"expense"`
	Template RecurringResponse `json:"template"`
}

type SweepResponse struct {
	Generated int `json:"generated"`
}

func NewRecurringResponse(t *models.RecurringTemplate) RecurringResponse {
	resp := RecurringResponse{
		ID:             t.ID.String(),
		TemplateName:   t.TemplateName,
		Amount:         t.Amount,
		Category:       string(t.Category),
		Description:    t.Description,
		Frequency:      string(t.Frequency),
		StartDate:      models.FormatDate(t.StartDate),
		NextOccurrence: models.FormatDate(t.NextOccurrence),
		IsActive:       t.IsActive,
		AutoGenerate:   t.AutoGenerate,
		ReminderDays:   t.ReminderDays,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
	if t.EndDate != nil {
		resp.EndDate = models.FormatDate(*t.EndDate)
	}
	if t.LastGenerated != nil {
		resp.LastGenerated = models.FormatDate(*t.LastGenerated)
	}
	return resp
}

func NewRecurringListResponse(templates []*models.RecurringTemplate) []RecurringResponse {
	out := make([]RecurringResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, NewRecurringResponse(t))
	}
	return out
}
