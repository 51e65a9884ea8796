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

var ErrTemplateInactive = errors.New("recurring template is inactive")

type RecurringService struct {
	recurringRepo *repository.RecurringRepository
	reconciler    *Reconciler
	logger        *zap.Logger
	now           func() time.Time
}

func NewRecurringService(recurringRepo *repository.RecurringRepository, reconciler *Reconciler, logger *zap.Logger) *RecurringService {
	return &RecurringService{
		recurringRepo: recurringRepo,
		reconciler:    reconciler,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *RecurringService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateRecurringRequest) (*models.RecurringTemplate, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category must not be empty", ErrInvalidInput)
	}
	if req.ReminderDays < 0 || req.ReminderDays > 30 {
		return nil, fmt.Errorf("%w: reminder_days must be between 0 and 30", ErrInvalidInput)
	}

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	startDate = models.DateOnly(startDate)

	var endDate *time.Time
	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		end = models.DateOnly(end)
		if !end.After(startDate) {
			return nil, fmt.Errorf("%w: end_date must be after start_date", ErrInvalidInput)
		}
		endDate = &end
	}

	frequency := models.Frequency(req.Frequency)
	next, err := Advance(startDate, frequency)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
	}

	now := s.now()
	template := &models.RecurringTemplate{
		ID:             uuid.New(),
		UserID:         userID,
		TemplateName:   req.TemplateName,
		Amount:         req.Amount,
		Category:       models.ExpenseCategory(req.Category),
		Description:    req.Description,
		Frequency:      frequency,
		StartDate:      startDate,
		EndDate:        endDate,
		NextOccurrence: next,
		IsActive:       true,
		AutoGenerate:   req.AutoGenerate,
		ReminderDays:   req.ReminderDays,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.recurringRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

func (s *RecurringService) Get(ctx context.Context, userID, id uuid.UUID) (*models.RecurringTemplate, error) {
	template, err := s.recurringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrForbidden
	}
	return template, nil
}

func (s *RecurringService) List(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTemplate, error) {
	return s.recurringRepo.ListByUser(ctx, userID)
}

// ListUpcoming returns the user's active templates due within their own
// reminder window: nextOccurrence in [today, today+reminderDays].
func (s *RecurringService) ListUpcoming(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTemplate, error) {
	templates, err := s.recurringRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := models.DateOnly(s.now())
	var upcoming []*models.RecurringTemplate
	for _, t := range templates {
		if !t.IsActive || t.ReminderDays == 0 {
			continue
		}
		windowEnd := today.AddDate(0, 0, t.ReminderDays)
		if !t.NextOccurrence.Before(today) && !t.NextOccurrence.After(windowEnd) {
			upcoming = append(upcoming, t)
		}
	}
	return upcoming, nil
}

// Update applies a partial edit. A change to frequency or start date
// re-anchors the cursor: nextOccurrence becomes one new-frequency step past
// lastGenerated, or past the (possibly new) start date when nothing has been
// generated yet. An unknown frequency is rejected before any field changes.
func (s *RecurringService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateRecurringRequest) (*models.RecurringTemplate, error) {
	template, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Frequency != nil {
		if _, err := Advance(template.NextOccurrence, models.Frequency(*req.Frequency)); err != nil {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, *req.Frequency)
		}
	}
	if req.Amount != nil && *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if req.ReminderDays != nil && (*req.ReminderDays < 0 || *req.ReminderDays > 30) {
		return nil, fmt.Errorf("%w: reminder_days must be between 0 and 30", ErrInvalidInput)
	}

	if req.TemplateName != nil {
		template.TemplateName = *req.TemplateName
	}
	if req.Amount != nil {
		template.Amount = *req.Amount
	}
	if req.Category != nil {
		template.Category = models.ExpenseCategory(*req.Category)
	}
	if req.Description != nil {
		template.Description = *req.Description
	}

	rescheduled := false
	if req.Frequency != nil {
		template.Frequency = models.Frequency(*req.Frequency)
		rescheduled = true
	}
	if req.StartDate != nil {
		start, err := models.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		template.StartDate = models.DateOnly(start)
		rescheduled = true
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			template.EndDate = nil
		} else {
			end, err := models.ParseDate(*req.EndDate)
			if err != nil {
				return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidInput)
			}
			endDate := models.DateOnly(end)
			template.EndDate = &endDate
		}
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if req.AutoGenerate != nil {
		template.AutoGenerate = *req.AutoGenerate
	}
	if req.ReminderDays != nil {
		template.ReminderDays = *req.ReminderDays
	}

	if rescheduled {
		next, err := Advance(nextOccurrenceAnchor(template), template.Frequency)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, template.Frequency)
		}
		template.NextOccurrence = next
	}

	template.UpdatedAt = s.now()
	if err := s.recurringRepo.Update(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

func (s *RecurringService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.recurringRepo.Delete(ctx, id)
}

// GenerateOne materializes the template's next expense on demand and advances
// the cursor, atomically. The end date is deliberately not checked here:
// manual generation past the nominal end is allowed, only the sweep expires
// templates.
func (s *RecurringService) GenerateOne(ctx context.Context, userID, id uuid.UUID) (*models.Expense, *models.RecurringTemplate, error) {
	template, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	if !template.IsActive {
		return nil, nil, ErrTemplateInactive
	}

	expense, err := materialize(template, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, template.Frequency)
	}

	if err := s.recurringRepo.ApplySweep(ctx, []*models.Expense{expense}, []*models.RecurringTemplate{template}); err != nil {
		return nil, nil, err
	}

	s.reconciler.ReconcileUserDates(ctx, userID, expense.Date)
	return expense, template, nil
}

// SweepDue advances every due template across all users: active,
// auto-generating, cursor at or before today. Expired templates (end date
// passed) are flipped inactive without generating. All inserts and updates of
// one run commit in a single transaction; because the committed cursors move
// past today, a second sweep the same day finds nothing due and generates no
// duplicates. Returns the number of expenses generated.
func (s *RecurringService) SweepDue(ctx context.Context, today time.Time) (int, error) {
	today = models.DateOnly(today)

	due, err := s.recurringRepo.ListDue(ctx, today)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	plan, err := planSweep(due, today, s.now())
	if err != nil {
		return 0, err
	}

	if err := s.recurringRepo.ApplySweep(ctx, plan.expenses, plan.templates); err != nil {
		return 0, err
	}

	// Best-effort budget refresh per affected user.
	datesByUser := make(map[uuid.UUID][]time.Time)
	for _, e := range plan.expenses {
		datesByUser[e.UserID] = append(datesByUser[e.UserID], e.Date)
	}
	for userID, dates := range datesByUser {
		s.reconciler.ReconcileUserDates(ctx, userID, dates...)
	}

	s.logger.Info("Recurring sweep completed",
		zap.String("today", models.FormatDate(today)),
		zap.Int("due", len(due)),
		zap.Int("generated", len(plan.expenses)),
	)

	return len(plan.expenses), nil
}
