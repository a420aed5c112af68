package busyblock

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
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
)

const table = "busy_blocks"

var (
	// ErrBusyBlockNotFound возвращается, когда блок занятости не найден
	ErrBusyBlockNotFound = errors.New("busyblock.repository: busy block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("busyblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("busyblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("busyblock.repository: failed to scan row")
)

var columns = []string{
	"id",
	"tenant_id",
	"user_id",
	"start_at",
	"end_at",
	"reason",
	"source",
	"source_id",
	"metadata",
	"created_at",
}

// Repository репозиторий блоков занятости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блоков занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет блоки одним INSERT
func (r *Repository) CreateBatch(ctx context.Context, blocks []*domain.BusyBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(table).Columns(columns...)
	now := time.Now().UTC()
	for _, b := range blocks {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		b.CreatedAt = now
		insert = insert.Values(
			b.ID,
			b.TenantID,
			b.UserID,
			b.StartAt.UTC(),
			b.EndAt.UTC(),
			b.Reason,
			b.Source,
			b.SourceID,
			b.Metadata,
			b.CreatedAt,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// Create сохраняет один блок
func (r *Repository) Create(ctx context.Context, b *domain.BusyBlock) (*domain.BusyBlock, error) {
	if err := r.CreateBatch(ctx, []*domain.BusyBlock{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID получает блок по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id string) (*domain.BusyBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	b, err := scanBlock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBusyBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %w", ErrScanRow, err)
	}
	return b, nil
}

// ListByUserInRange возвращает блоки пользователя, пересекающие rng
func (r *Repository) ListByUserInRange(ctx context.Context, tenantID, userID string, rng interval.Interval) ([]*domain.BusyBlock, error) {
	return r.List(ctx, domain.BusyBlockFilter{
		TenantID: tenantID,
		UserID:   userID,
		Start:    &rng.Start,
		End:      &rng.End,
	})
}

// List возвращает блоки пользователя по фильтру, упорядоченные по началу
func (r *Repository) List(ctx context.Context, filter domain.BusyBlockFilter) ([]*domain.BusyBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": filter.TenantID, "user_id": filter.UserID}).
		OrderBy("start_at ASC")

	// Пересечение полуоткрытых интервалов: start_at < end AND end_at > start
	if filter.End != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.End.UTC()})
	}
	if filter.Start != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": filter.Start.UTC()})
	}
	if filter.Source != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source": *filter.Source})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BusyBlock, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete удаляет блок
func (r *Repository) Delete(ctx context.Context, tenantID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBusyBlockNotFound
	}
	return nil
}

// DeleteBySource удаляет зеркальные блоки события sourceID и возвращает ID затронутых пользователей
func (r *Repository) DeleteBySource(ctx context.Context, tenantID string, source domain.BusyBlockSource, sourceID string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "source": source, "source_id": sourceID}).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DeleteBySource - build delete query: %w", ErrBuildQuery, err)
	}

	return r.queryUserIDs(ctx, executor, "DeleteBySource", query, args)
}

// MoveBySource переносит зеркальные блоки события sourceID на новое время
func (r *Repository) MoveBySource(ctx context.Context, tenantID string, source domain.BusyBlockSource, sourceID string, to interval.Interval) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_at", to.Start.UTC()).
		Set("end_at", to.End.UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID, "source": source, "source_id": sourceID}).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MoveBySource - build update query: %w", ErrBuildQuery, err)
	}

	return r.queryUserIDs(ctx, executor, "MoveBySource", query, args)
}

func (r *Repository) queryUserIDs(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]string, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	userIDs := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("%w: %s - scan user_id: %w", ErrScanRow, op, err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	return userIDs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlock(row rowScanner) (*domain.BusyBlock, error) {
	var b domain.BusyBlock
	var reason, sourceID sql.NullString

	err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.UserID,
		&b.StartAt,
		&b.EndAt,
		&reason,
		&b.Source,
		&sourceID,
		&b.Metadata,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		b.Reason = &reason.String
	}
	if sourceID.Valid {
		b.SourceID = &sourceID.String
	}
	b.StartAt = b.StartAt.UTC()
	b.EndAt = b.EndAt.UTC()
	return &b, nil
}
