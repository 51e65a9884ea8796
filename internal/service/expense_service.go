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

type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	classifier  *ClassifierService
	reconciler  *Reconciler
	logger      *zap.Logger
	now         func() time.Time
}

func NewExpenseService(
	expenseRepo *repository.ExpenseRepository,
	classifier *ClassifierService,
	reconciler *Reconciler,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		classifier:  classifier,
		reconciler:  reconciler,
		logger:      logger,
		now:         time.Now,
	}
}

// Create persists a new expense for the user. An empty category asks the
// classifier for a suggestion; classifier failures never fail the create
// because Suggest degrades to keyword rules internally.
func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	category := models.ExpenseCategory(req.Category)
	aiSuggested := false
	if category == "" {
		suggestion := s.classifier.Suggest(ctx, req.Description, req.Amount, nil)
		category = suggestion.Category
		aiSuggested = suggestion.AIGenerated
	}

	now := s.now()
	expense := &models.Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      req.Amount,
		Category:    category,
		Description: req.Description,
		Date:        models.DateOnly(date),
		AISuggested: aiSuggested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.reconciler.ReconcileUserDates(ctx, userID, expense.Date)
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	if expense.UserID != userID {
		return nil, ErrForbidden
	}
	return expense, nil
}

// List returns the user's expenses, optionally restricted to the inclusive
// calendar-date interval [from, to] (either bound may be empty).
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]*models.Expense, error) {
	if from == "" && to == "" {
		return s.expenseRepo.ListByUser(ctx, userID)
	}

	fromDate := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	toDate := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	var err error
	if from != "" {
		if fromDate, err = models.ParseDate(from); err != nil {
			return nil, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if to != "" {
		if toDate, err = models.ParseDate(to); err != nil {
			return nil, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	return s.expenseRepo.ListByUserBetween(ctx, userID, fromDate, toDate)
}

func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	oldDate := expense.Date

	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidInput)
		}
		expense.Category = models.ExpenseCategory(*req.Category)
		expense.AISuggested = false // user override wins
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		expense.Date = models.DateOnly(date)
	}

	expense.UpdatedAt = s.now()
	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	s.reconciler.ReconcileUserDates(ctx, userID, oldDate, expense.Date)
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	expense, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.reconciler.ReconcileUserDates(ctx, userID, expense.Date)
	return nil
}

// SuggestCategory exposes the classifier directly, for clients that want a
// suggestion before submitting the expense.
func (s *ExpenseService) SuggestCategory(ctx context.Context, req *dto.SuggestCategoryRequest) *models.CategorySuggestion {
	var candidates []models.ExpenseCategory
	for _, c := range req.Categories {
		candidates = append(candidates, models.ExpenseCategory(c))
	}
	return s.classifier.Suggest(ctx, req.Description, req.Amount, candidates)
}
