package repository

import (
	"context"
	"time"

	"spendwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var recurringColumns = []string{
	"id", "user_id", "template_name", "amount", "category", "description",
	"frequency", "start_date", "end_date", "next_occurrence", "last_generated",
	"is_active", "auto_generate", "reminder_days", "created_at", "updated_at",
}

type RecurringRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecurringRepository(db *pgxpool.Pool, logger *zap.Logger) *RecurringRepository {
	return &RecurringRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RecurringRepository) Create(ctx context.Context, t *models.RecurringTemplate) error {
	query := squirrel.Insert("recurring_templates").
		Columns(recurringColumns...).
		Values(t.ID, t.UserID, t.TemplateName, t.Amount, t.Category, t.Description,
			t.Frequency, t.StartDate, t.EndDate, t.NextOccurrence, t.LastGenerated,
			t.IsActive, t.AutoGenerate, t.ReminderDays, t.CreatedAt, t.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RecurringRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RecurringTemplate, error) {
	query := squirrel.Select(recurringColumns...).
		From("recurring_templates").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanTemplate(r.db.QueryRow(ctx, sql, args...))
}

func (r *RecurringRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTemplate, error) {
	query := squirrel.Select(recurringColumns...).
		From("recurring_templates").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("next_occurrence ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryTemplates(ctx, query)
}

// ListDue returns all templates across users that the sweep must consider:
// active, auto-generating, cursor at or before today.
func (r *RecurringRepository) ListDue(ctx context.Context, today time.Time) ([]*models.RecurringTemplate, error) {
	query := squirrel.Select(recurringColumns...).
		From("recurring_templates").
		Where(squirrel.Eq{"is_active": true, "auto_generate": true}).
		Where(squirrel.LtOrEq{"next_occurrence": today}).
		OrderBy("next_occurrence ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryTemplates(ctx, query)
}

func (r *RecurringRepository) Update(ctx context.Context, t *models.RecurringTemplate) error {
	sql, args, err := templateUpdateQuery(t).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RecurringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("recurring_templates").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ApplySweep commits one sweep run atomically: every generated expense and
// every template cursor/state update lands in a single transaction, so a
// failure mid-sweep leaves no template advanced without its expense.
func (r *RecurringRepository) ApplySweep(ctx context.Context, expenses []*models.Expense, templates []*models.RecurringTemplate) error {
	if len(expenses) == 0 && len(templates) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if len(expenses) > 0 {
		builder := squirrel.Insert("expenses").
			Columns("id", "user_id", "amount", "category", "description", "date",
				"ai_suggested", "recurring_template_id", "created_at", "updated_at").
			PlaceholderFormat(squirrel.Dollar)

		for _, e := range expenses {
			builder = builder.Values(e.ID, e.UserID, e.Amount, e.Category, e.Description, e.Date,
				e.AISuggested, e.RecurringTemplateID, e.CreatedAt, e.UpdatedAt)
		}

		sql, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	for _, t := range templates {
		sql, args, err := templateUpdateQuery(t).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func templateUpdateQuery(t *models.RecurringTemplate) squirrel.UpdateBuilder {
	return squirrel.Update("recurring_templates").
		Set("template_name", t.TemplateName).
		Set("amount", t.Amount).
		Set("category", t.Category).
		Set("description", t.Description).
		Set("frequency", t.Frequency).
		Set("start_date", t.StartDate).
		Set("end_date", t.EndDate).
		Set("next_occurrence", t.NextOccurrence).
		Set("last_generated", t.LastGenerated).
		Set("is_active", t.IsActive).
		Set("auto_generate", t.AutoGenerate).
		Set("reminder_days", t.ReminderDays).
		Set("updated_at", t.UpdatedAt).
		Where(squirrel.Eq{"id": t.ID}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *RecurringRepository) queryTemplates(ctx context.Context, query squirrel.SelectBuilder) ([]*models.RecurringTemplate, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.RecurringTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func scanTemplate(row pgx.Row) (*models.RecurringTemplate, error) {
	var t models.RecurringTemplate
	err := row.Scan(
		&t.ID, &t.UserID, &t.TemplateName, &t.Amount, &t.Category, &t.Description,
		&t.Frequency, &t.StartDate, &t.EndDate, &t.NextOccurrence, &t.LastGenerated,
		&t.IsActive, &t.AutoGenerate, &t.ReminderDays, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
