package workinghours

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

const table = "working_hours"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("workinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("workinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("workinghours.repository: failed to scan row")
)

// Repository репозиторий рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись. Старые записи не удаляются: при пересечении
// периодов действия побеждает более новая
func (r *Repository) Create(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	wh.ID = uuid.NewString()
	now := time.Now().UTC()
	wh.CreatedAt = now
	wh.UpdatedAt = now

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"tenant_id",
			"user_id",
			"weekly",
			"timezone",
			"effective_from",
			"effective_to",
			"created_at",
			"updated_at",
		).
		Values(
			wh.ID,
			wh.TenantID,
			wh.UserID,
			wh.Weekly,
			wh.Timezone,
			dateArg(wh.EffectiveFrom),
			dateArg(wh.EffectiveTo),
			wh.CreatedAt,
			wh.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return wh, nil
}

// ListByUser возвращает все записи пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, tenantID, userID string) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"user_id",
		"weekly",
		"timezone",
		"effective_from",
		"effective_to",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		var wh domain.WorkingHours
		var from, to sql.NullTime

		if err := rows.Scan(
			&wh.ID,
			&wh.TenantID,
			&wh.UserID,
			&wh.Weekly,
			&wh.Timezone,
			&from,
			&to,
			&wh.CreatedAt,
			&wh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %w", ErrScanRow, err)
		}

		if from.Valid {
			wh.EffectiveFrom = &from.Time
		}
		if to.Valid {
			wh.EffectiveTo = &to.Time
		}
		records = append(records, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

// dateArg передает календарную дату без зоны, чтобы DATE в БД совпала с датой записи
func dateArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateFormat)
}
