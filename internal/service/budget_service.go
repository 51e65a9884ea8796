package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spendwise/internal/dto"
	"spendwise/internal/models"
	"spendwise/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BudgetService struct {
	budgetRepo  *repository.BudgetRepository
	expenseRepo *repository.ExpenseRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewBudgetService(budgetRepo *repository.BudgetRepository, expenseRepo *repository.ExpenseRepository, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	categories, err := buildCategoryBudgets(req.CategoryBudgets)
	if err != nil {
		return nil, err
	}
	alerts, err := buildAlerts(req.Alerts)
	if err != nil {
		return nil, err
	}

	now := s.now()
	budget := &models.Budget{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            req.Name,
		Type:            models.BudgetType(req.Type),
		Period:          period,
		CategoryBudgets: categories,
		Alerts:          alerts,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	budget.TotalLimit = sumLimits(categories)
	budget.TotalRemaining = budget.TotalLimit

	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}
	if budget.UserID != userID {
		return nil, ErrForbidden
	}
	return budget, nil
}

func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]*models.Budget, error) {
	return s.budgetRepo.ListByUser(ctx, userID)
}

// GetProgress returns the budget with spent/remaining/percentage recomputed
// from the user's live expense set. The recompute is transient: the stored
// budget is left alone, reconciliation on expense writes keeps it warm.
func (s *BudgetService) GetProgress(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	budget, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ComputeProgress(budget, expenses, s.now()), nil
}

// Update applies a partial update. Replacing the alert list resets the latch
// on every alert in it: reconfiguration is the one way a triggered alert is
// cleared. Replacing category budgets recomputes TotalLimit.
func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Type != nil {
		budget.Type = models.BudgetType(*req.Type)
	}

	startDate := models.FormatDate(budget.Period.StartDate)
	endDate := models.FormatDate(budget.Period.EndDate)
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if req.StartDate != nil || req.EndDate != nil {
		period, err := parsePeriod(startDate, endDate)
		if err != nil {
			return nil, err
		}
		budget.Period = period
	}

	if req.CategoryBudgets != nil {
		categories, err := buildCategoryBudgets(*req.CategoryBudgets)
		if err != nil {
			return nil, err
		}
		budget.CategoryBudgets = categories
		budget.TotalLimit = sumLimits(categories)
		budget.TotalSpent = 0
		budget.TotalRemaining = budget.TotalLimit
	}
	if req.Alerts != nil {
		alerts, err := buildAlerts(*req.Alerts)
		if err != nil {
			return nil, err
		}
		budget.Alerts = alerts
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}

	budget.UpdatedAt = s.now()
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.budgetRepo.Delete(ctx, id)
}

func parsePeriod(startDate, endDate string) (models.Period, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return models.Period{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return models.Period{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !end.After(start) {
		return models.Period{}, fmt.Errorf("%w: end_date must be after start_date", ErrInvalidInput)
	}
	return models.Period{StartDate: models.DateOnly(start), EndDate: models.DateOnly(end)}, nil
}

func buildCategoryBudgets(inputs []dto.CategoryBudgetInput) ([]models.CategoryBudget, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one category budget is required", ErrInvalidInput)
	}

	categories := make([]models.CategoryBudget, 0, len(inputs))
	for _, in := range inputs {
		if in.Category == "" {
			return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidInput)
		}
		if in.Limit < 0 {
			return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
		}
		categories = append(categories, models.CategoryBudget{
			Category:  models.ExpenseCategory(in.Category),
			Limit:     in.Limit,
			Remaining: in.Limit,
		})
	}
	return categories, nil
}

func buildAlerts(inputs []dto.BudgetAlertInput) ([]models.BudgetAlert, error) {
	alerts := make([]models.BudgetAlert, 0, len(inputs))
	for _, in := range inputs {
		if in.Category == "" {
			return nil, fmt.Errorf("%w: alert category must not be empty", ErrInvalidInput)
		}
		if in.Threshold < 0 || in.Threshold > 100 {
			return nil, fmt.Errorf("%w: alert threshold must be between 0 and 100", ErrInvalidInput)
		}
		alerts = append(alerts, models.BudgetAlert{
			Category:  models.ExpenseCategory(in.Category),
			Threshold: in.Threshold,
		})
	}
	return alerts, nil
}

func sumLimits(categories []models.CategoryBudget) float64 {
	total := 0.0
	for _, cb := range categories {
		total += cb.Limit
	}
	return round2(total)
}
