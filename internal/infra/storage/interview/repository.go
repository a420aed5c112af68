package interview

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
)

const table = "interviews"

var (
	// ErrInterviewNotFound возвращается, когда интервью не найдено
	ErrInterviewNotFound = errors.New("interview.repository: interview not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("interview.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("interview.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("interview.repository: failed to scan row")
)

var columns = []string{
	"id",
	"tenant_id",
	"candidate_id",
	"interviewer_ids",
	"start_at",
	"end_at",
	"status",
	"stage",
	"slot_id",
	"bulk_batch_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий интервью
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория интервью
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет интервью
func (r *Repository) Create(ctx context.Context, iv *domain.Interview) (*domain.Interview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			iv.ID,
			iv.TenantID,
			iv.CandidateID,
			pq.Array(iv.InterviewerIDs),
			iv.StartAt.UTC(),
			iv.EndAt.UTC(),
			iv.Status,
			iv.Stage,
			iv.SlotID,
			iv.BulkBatchID,
			iv.CreatedAt,
			iv.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return iv, nil
}

// GetByID получает интервью по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id string) (*domain.Interview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	iv, err := scanInterview(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan interview: %w", ErrScanRow, err)
	}
	return iv, nil
}

// ListActiveByUserInRange возвращает неотмененные интервью с участием интервьюера, пересекающие rng
func (r *Repository) ListActiveByUserInRange(ctx context.Context, tenantID, userID string, rng interval.Interval) ([]*domain.Interview, error) {
	return r.list(ctx, "ListActiveByUserInRange", squirrel.And{
		squirrel.Eq{"tenant_id": tenantID, "status": domain.ActiveInterviewStatuses},
		squirrel.Expr("? = ANY(interviewer_ids)", userID),
		squirrel.Lt{"start_at": rng.End.UTC()},
		squirrel.Gt{"end_at": rng.Start.UTC()},
	})
}

// ListActiveByCandidate возвращает неотмененные интервью кандидата
func (r *Repository) ListActiveByCandidate(ctx context.Context, tenantID, candidateID string) ([]*domain.Interview, error) {
	return r.list(ctx, "ListActiveByCandidate", squirrel.Eq{
		"tenant_id":    tenantID,
		"candidate_id": candidateID,
		"status":       domain.ActiveInterviewStatuses,
	})
}

// UpdateTime переносит интервью
func (r *Repository) UpdateTime(ctx context.Context, tenantID, id string, to interval.Interval) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_at", to.Start.UTC()).
		Set("end_at", to.End.UTC()).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTime - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "UpdateTime", query, args)
}

// UpdateStatus меняет статус интервью
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id string, status domain.InterviewStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "UpdateStatus", query, args)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Interview, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	interviews := make([]*domain.Interview, 0)
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return interviews, nil
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
		return ErrInterviewNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInterview(row rowScanner) (*domain.Interview, error) {
	var iv domain.Interview
	var interviewerIDs pq.StringArray
	var stage, slotID, batchID sql.NullString

	err := row.Scan(
		&iv.ID,
		&iv.TenantID,
		&iv.CandidateID,
		&interviewerIDs,
		&iv.StartAt,
		&iv.EndAt,
		&iv.Status,
		&stage,
		&slotID,
		&batchID,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	iv.InterviewerIDs = []string(interviewerIDs)
	if stage.Valid {
		iv.Stage = &stage.String
	}
	if slotID.Valid {
		iv.SlotID = &slotID.String
	}
	if batchID.Valid {
		iv.BulkBatchID = &batchID.String
	}
	iv.StartAt = iv.StartAt.UTC()
	iv.EndAt = iv.EndAt.UTC()
	return &iv, nil
}
