package dto

import (
	"time"

	"spendwise/internal/models"
)

type CategoryBudgetInput struct {
	Category string  `json:"category" validate:"required"`
	Limit    float64 `json:"limit" validate:"gte=0"`
}

type BudgetAlertInput struct {
	Category  string  `json:"category" validate:"required"`
	Threshold float64 `json:"threshold" validate:"gte=0,lte=100"`
}

type CreateBudgetRequest struct {
	Name            string                `json:"name" validate:"required"`
	Type            string                `json:"type" validate:"required,oneof=monthly weekly custom"`
	StartDate       string                `json:"start_date" validate:"required"`
	EndDate         string                `json:"end_date" validate:"required"`
	CategoryBudgets []CategoryBudgetInput `json:"category_budgets" validate:"required,min=1"`
	Alerts          []BudgetAlertInput    `json:"alerts,omitempty"`
}

type UpdateBudgetRequest struct {
	Name            *string                `json:"name,omitempty"`
	Type            *string                `json:"type,omitempty"`
	StartDate       *string                `json:"start_date,omitempty"`
	EndDate         *string                `json:"end_date,omitempty"`
	CategoryBudgets *[]CategoryBudgetInput `json:"category_budgets,omitempty"`
	Alerts          *[]BudgetAlertInput    `json:"alerts,omitempty"`
	IsActive        *bool                  `json:"is_active,omitempty"`
}

type CategoryBudgetResponse struct {
	Category   string  `json:"category"`
	Limit      float64 `json:"limit"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

type BudgetAlertResponse struct {
	Category    string  `json:"category"`
	Threshold   float64 `json:"threshold"`
	Triggered   bool    `json:"triggered"`
	TriggeredAt string  `json:"triggered_at,omitempty"`
}

type BudgetResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Type            string                   `json:"type"`
	StartDate       string                   `json:"start_date"`
	EndDate         string                   `json:"end_date"`
	CategoryBudgets []CategoryBudgetResponse `json:"category_budgets"`
	TotalLimit      float64                  `json:"total_limit"`
	TotalSpent      float64                  `json:"total_spent"`
	TotalRemaining  float64                  `json:"total_remaining"`
	Alerts          []BudgetAlertResponse    `json:"alerts"`
	IsActive        bool                     `json:"is_active"`
	CreatedAt       string                   `json:"created_at"`
	UpdatedAt       string                   `json:"updated_at"`
}

func NewBudgetResponse(b *models.Budget) BudgetResponse {
	categories := make([]CategoryBudgetResponse, 0, len(b.CategoryBudgets))
	for _, cb := range b.CategoryBudgets {
		categories = append(categories, CategoryBudgetResponse{
			Category:   string(cb.Category),
			Limit:      cb.Limit,
			Spent:      cb.Spent,
			Remaining:  cb.Remaining,
			Percentage: cb.Percentage,
		})
	}

	alerts := make([]BudgetAlertResponse, 0, len(b.Alerts))
	for _, a := range b.Alerts {
		resp := BudgetAlertResponse{
			Category:  string(a.Category),
			Threshold: a.Threshold,
			Triggered: a.Triggered,
		}
		if a.TriggeredAt != nil {
			resp.TriggeredAt = a.TriggeredAt.Format(time.RFC3339)
		}
		alerts = append(alerts, resp)
	}

	return BudgetResponse{
		ID:              b.ID.String(),
		Name:            b.Name,
		Type:            string(b.Type),
		StartDate:       models.FormatDate(b.Period.StartDate),
		EndDate:         models.FormatDate(b.Period.EndDate),
		CategoryBudgets: categories,
		TotalLimit:      b.TotalLimit,
		TotalSpent:      b.TotalSpent,
		TotalRemaining:  b.TotalRemaining,
		Alerts:          alerts,
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}

func NewBudgetListResponse(budgets []*models.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, NewBudgetResponse(b))
	}
	return out
}
