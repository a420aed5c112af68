package rule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
)

const table = "scheduling_rules"

var columns = []string{
	"id",
	"tenant_id",
	"name",
	"min_notice_mins",
	"buffer_before_mins",
	"buffer_after_mins",
	"default_slot_mins",
	"allow_overlapping",
	"is_default",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил планирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает правило. Если правило создается как правило по умолчанию,
// вызывающий код должен сначала снять флаг с предыдущего (ClearDefault) в той же транзакции
func (r *Repository) Create(ctx context.Context, rule *domain.SchedulingRule) (*domain.SchedulingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rule.ID = uuid.NewString()
	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			rule.ID,
			rule.TenantID,
			rule.Name,
			rule.MinNoticeMins,
			rule.BufferBeforeMins,
			rule.BufferAfterMins,
			rule.DefaultSlotMins,
			rule.AllowOverlapping,
			rule.IsDefault,
			rule.CreatedBy,
			rule.CreatedAt,
			rule.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return rule, nil
}

// GetByID получает правило тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id string) (*domain.SchedulingRule, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"tenant_id": tenantID, "id": id})
}

// GetDefault получает правило тенанта по умолчанию
func (r *Repository) GetDefault(ctx context.Context, tenantID string) (*domain.SchedulingRule, error) {
	return r.getOne(ctx, "GetDefault", squirrel.Eq{"tenant_id": tenantID, "is_default": true})
}

// GetWithFallback получает правило с учетом приоритетов:
// 1. Правило ruleID, если оно задано и существует
// 2. Правило тенанта по умолчанию
// 3. Встроенное правило, если ruleID не задан
//
// Если ruleID задан, но не найден, и у тенанта нет правила по умолчанию, возвращается ErrRuleNotFound
func (r *Repository) GetWithFallback(ctx context.Context, tenantID string, ruleID *string) (*domain.SchedulingRule, error) {
	if ruleID != nil && *ruleID != "" {
		rule, err := r.GetByID(ctx, tenantID, *ruleID)
		if err == nil {
			return rule, nil
		}
		if !errors.Is(err, ErrRuleNotFound) {
			return nil, err
		}
	}

	rule, err := r.GetDefault(ctx, tenantID)
	if err == nil {
		return rule, nil
	}
	if !errors.Is(err, ErrRuleNotFound) {
		return nil, err
	}

	if ruleID != nil && *ruleID != "" {
		return nil, fmt.Errorf("%w: rule %s and no tenant default", ErrRuleNotFound, *ruleID)
	}
	return domain.BuiltInRule(tenantID), nil
}

// List возвращает правила тенанта, правило по умолчанию первым
func (r *Repository) List(ctx context.Context, tenantID string) ([]*domain.SchedulingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("is_default DESC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.SchedulingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// Update сохраняет изменения правила
func (r *Repository) Update(ctx context.Context, rule *domain.SchedulingRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rule.UpdatedAt = time.Now().UTC()

	query, args, err := psqlbuilder.Update(table).
		Set("name", rule.Name).
		Set("min_notice_mins", rule.MinNoticeMins).
		Set("buffer_before_mins", rule.BufferBeforeMins).
		Set("buffer_after_mins", rule.BufferAfterMins).
		Set("default_slot_mins", rule.DefaultSlotMins).
		Set("allow_overlapping", rule.AllowOverlapping).
		Set("is_default", rule.IsDefault).
		Set("updated_at", rule.UpdatedAt).
		Where(squirrel.Eq{"tenant_id": rule.TenantID, "id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Update", query, args)
}

// ClearDefault снимает флаг по умолчанию со всех правил тенанта
func (r *Repository) ClearDefault(ctx context.Context, tenantID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_default", false).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID, "is_default": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearDefault - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearDefault - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

// SetDefault делает правило правилом по умолчанию. Вызывать после ClearDefault в транзакции
func (r *Repository) SetDefault(ctx context.Context, tenantID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_default", true).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetDefault - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "SetDefault", query, args)
}

// Delete удаляет правило
func (r *Repository) Delete(ctx context.Context, tenantID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Delete", query, args)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.SchedulingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table).Where(where)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan rule: %w", ErrScanRow, op, err)
	}

	return rule, nil
}

func (r *Repository) execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.SchedulingRule, error) {
	var rule domain.SchedulingRule
	var createdBy sql.NullString

	err := row.Scan(
		&rule.ID,
		&rule.TenantID,
		&rule.Name,
		&rule.MinNoticeMins,
		&rule.BufferBeforeMins,
		&rule.BufferAfterMins,
		&rule.DefaultSlotMins,
		&rule.AllowOverlapping,
		&rule.IsDefault,
		&createdBy,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		rule.CreatedBy = &createdBy.String
	}
	return &rule, nil
}
