package repository

import (
	"context"
	"encoding/json"
	"time"

	"spendwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var budgetColumns = []string{
	"id", "user_id", "name", "type", "start_date", "end_date",
	"category_budgets", "total_limit", "total_spent", "total_remaining",
	"alerts", "is_active", "created_at", "updated_at",
}

// BudgetRepository persists budgets with their ordered category and alert
// lists as JSONB documents; the period bounds stay relational columns so the
// containment query can use range predicates.
type BudgetRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBudgetRepository(db *pgxpool.Pool, logger *zap.Logger) *BudgetRepository {
	return &BudgetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	categories, alerts, err := marshalBudgetDocs(budget)
	if err != nil {
		return err
	}

	query := squirrel.Insert("budgets").
		Columns(budgetColumns...).
		Values(budget.ID, budget.UserID, budget.Name, budget.Type, budget.Period.StartDate, budget.Period.EndDate,
			categories, budget.TotalLimit, budget.TotalSpent, budget.TotalRemaining,
			alerts, budget.IsActive, budget.CreatedAt, budget.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanBudget(r.db.QueryRow(ctx, sql, args...))
}

func (r *BudgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryBudgets(ctx, query)
}

// ListActiveContaining returns the user's active budgets whose period contains
// date, bounds inclusive. This is the reconciliation fan-out query.
func (r *BudgetRepository) ListActiveContaining(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.Budget, error) {
	query := squirrel.Select(budgetColumns...).
		From("budgets").
		Where(squirrel.Eq{"user_id": userID, "is_active": true}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryBudgets(ctx, query)
}

func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	categories, alerts, err := marshalBudgetDocs(budget)
	if err != nil {
		return err
	}

	query := squirrel.Update("budgets").
		Set("name", budget.Name).
		Set("type", budget.Type).
		Set("start_date", budget.Period.StartDate).
		Set("end_date", budget.Period.EndDate).
		Set("category_budgets", categories).
		Set("total_limit", budget.TotalLimit).
		Set("total_spent", budget.TotalSpent).
		Set("total_remaining", budget.TotalRemaining).
		Set("alerts", alerts).
		Set("is_active", budget.IsActive).
		Set("updated_at", budget.UpdatedAt).
		Where(squirrel.Eq{"id": budget.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// UpdateProgressBatch persists recomputed progress for all affected budgets in
// one transaction, so a failed reconciliation applies nothing.
func (r *BudgetRepository) UpdateProgressBatch(ctx context.Context, budgets []*models.Budget) error {
	if len(budgets) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, budget := range budgets {
		categories, alerts, err := marshalBudgetDocs(budget)
		if err != nil {
			return err
		}

		query := squirrel.Update("budgets").
			Set("category_budgets", categories).
			Set("total_limit", budget.TotalLimit).
			Set("total_spent", budget.TotalSpent).
			Set("total_remaining", budget.TotalRemaining).
			Set("alerts", alerts).
			Set("updated_at", budget.UpdatedAt).
			Where(squirrel.Eq{"id": budget.ID}).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("budgets").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BudgetRepository) queryBudgets(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Budget, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

func marshalBudgetDocs(budget *models.Budget) (categories, alerts []byte, err error) {
	categories, err = json.Marshal(budget.CategoryBudgets)
	if err != nil {
		return nil, nil, err
	}
	alerts, err = json.Marshal(budget.Alerts)
	if err != nil {
		return nil, nil, err
	}
	return categories, alerts, nil
}

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	var categories, alerts []byte

	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Type, &b.Period.StartDate, &b.Period.EndDate,
		&categories, &b.TotalLimit, &b.TotalSpent, &b.TotalRemaining,
		&alerts, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(categories, &b.CategoryBudgets); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(alerts, &b.Alerts); err != nil {
		return nil, err
	}

	return &b, nil
}
