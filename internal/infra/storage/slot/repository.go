package slot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/psqlbuilder"
)

const table = "interview_slots"

var columns = []string{
	"id",
	"tenant_id",
	"organizer_id",
	"participants",
	"start_at",
	"end_at",
	"timezone",
	"status",
	"interview_id",
	"metadata",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов интервью
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет один слот. ID генерируется, если не задан
func (r *Repository) Create(ctx context.Context, s *domain.InterviewSlot) (*domain.InterviewSlot, error) {
	created, err := r.CreateBatch(ctx, []*domain.InterviewSlot{s})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch сохраняет слоты одним INSERT
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.InterviewSlot) ([]*domain.InterviewSlot, error) {
	if len(slots) == 0 {
		return slots, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(table).Columns(
		"id",
		"tenant_id",
		"organizer_id",
		"participants",
		"participant_user_ids",
		"start_at",
		"end_at",
		"timezone",
		"status",
		"interview_id",
		"metadata",
		"created_at",
		"updated_at",
	)

	now := time.Now().UTC()
	for _, s := range slots {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		s.UpdatedAt = s.CreatedAt

		insert = insert.Values(
			s.ID,
			s.TenantID,
			s.OrganizerID,
			s.Participants,
			pq.Array(s.Participants.UserIDs()),
			s.StartAt.UTC(),
			s.EndAt.UTC(),
			s.Timezone,
			s.Status,
			s.InterviewID,
			s.Metadata,
			s.CreatedAt,
			s.UpdatedAt,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}

	return slots, nil
}

// GetByID получает слот по ID. Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, tenantID, id string) (*domain.InterviewSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает страницу слотов по фильтру и общее количество подходящих слотов
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.InterviewSlot, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"tenant_id": filter.TenantID}}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.UserID != nil {
		where = append(where, squirrel.Expr("? = ANY(participant_user_ids)", *filter.UserID))
	}
	if filter.Start != nil {
		where = append(where, squirrel.GtOrEq{"start_at": filter.Start.UTC()})
	}
	if filter.End != nil {
		where = append(where, squirrel.LtOrEq{"end_at": filter.End.UTC()})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %w", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count slots: %w", ErrScanRow, err)
	}

	page, perPage := normalizePage(filter.Page, filter.PerPage)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("start_at ASC", "id ASC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, 0, err
	}
	return slots, total, nil
}

// Book атомарно переводит слот AVAILABLE -> BOOKED.
// Если слот уже не AVAILABLE (его забронировал параллельный запрос), возвращает ErrSlotAlreadyBooked
func (r *Repository) Book(ctx context.Context, s *domain.InterviewSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.SlotStatusBooked).
		Set("participants", s.Participants).
		Set("participant_user_ids", pq.Array(s.Participants.UserIDs())).
		Set("interview_id", s.InterviewID).
		Set("metadata", s.Metadata).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{
			"id":        s.ID,
			"tenant_id": s.TenantID,
			"status":    domain.SlotStatusAvailable,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Book - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Book - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Book - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotAlreadyBooked
	}

	return nil
}

// Reschedule переносит активный слот (AVAILABLE или BOOKED) на новое время
func (r *Repository) Reschedule(ctx context.Context, s *domain.InterviewSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_at", s.StartAt.UTC()).
		Set("end_at", s.EndAt.UTC()).
		Set("metadata", s.Metadata).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{
			"id":        s.ID,
			"tenant_id": s.TenantID,
			"status":    []domain.SlotStatus{domain.SlotStatusAvailable, domain.SlotStatusBooked},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// UpdateStatus меняет статус, только если текущий статус равен from
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id string, from, to domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// ExpireStarted переводит в EXPIRED все свободные слоты, начавшиеся до cutoff, и возвращает их
func (r *Repository) ExpireStarted(ctx context.Context, cutoff time.Time, limit int) ([]*domain.InterviewSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Подзапрос собирается с плейсхолдерами "?", нумерацию $n проставит внешний UPDATE
	sub := squirrel.Select("id").
		From(table).
		Where(squirrel.Eq{"status": domain.SlotStatusAvailable}).
		Where(squirrel.Lt{"start_at": cutoff.UTC()}).
		OrderBy("start_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	subQuery, subArgs, err := sub.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireStarted - build subquery: %w", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.SlotStatusExpired).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Expr("id IN ("+subQuery+")", subArgs...)).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireStarted - build update query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireStarted - execute update: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.InterviewSlot, error) {
	var s domain.InterviewSlot
	var organizerID, interviewID sql.NullString

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&organizerID,
		&s.Participants,
		&s.StartAt,
		&s.EndAt,
		&s.Timezone,
		&s.Status,
		&interviewID,
		&s.Metadata,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if organizerID.Valid {
		s.OrganizerID = &organizerID.String
	}
	if interviewID.Valid {
		s.InterviewID = &interviewID.String
	}
	s.StartAt = s.StartAt.UTC()
	s.EndAt = s.EndAt.UTC()

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.InterviewSlot, error) {
	slots := make([]*domain.InterviewSlot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = domain.DefaultPerPage
	}
	if perPage > domain.MaxPerPage {
		perPage = domain.MaxPerPage
	}
	return page, perPage
}
