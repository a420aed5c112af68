package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	busyBlockRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/busyblock"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar/models"
)

// Service сервис рабочих часов и блоков занятости - данных, из которых считается доступность
type Service struct {
	workingHoursRepo WorkingHoursRepository
	busyBlockRepo    BusyBlockRepository
	cache            CacheInvalidator
	logger           Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	workingHoursRepo WorkingHoursRepository,
	busyBlockRepo BusyBlockRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepo,
		busyBlockRepo:    busyBlockRepo,
		cache:            cache,
		logger:           logger,
	}
}

// SetWorkingHours сохраняет новую запись рабочих часов пользователя.
// Прежние записи не удаляются: на пересечении периодов действует более новая
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: tenant=%s, user=%s, timezone=%s, windows=%d",
		req.TenantID, req.UserID, req.Timezone, len(req.Weekly))

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	wh, err := req.ToDomainWorkingHours()
	if err != nil {
		s.logger.Warn("SetWorkingHours: invalid dates: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := wh.Validate(); err != nil {
		s.logger.Warn("SetWorkingHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.workingHoursRepo.Create(ctx, wh)
	if err != nil {
		s.logger.Error("SetWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "SetWorkingHours", req.TenantID, req.UserID)

	s.logger.Info("SetWorkingHours: saved record id=%s for user=%s", created.ID, req.UserID)
	return models.FromDomainWorkingHours(created), nil
}

// GetWorkingHours возвращает записи пользователя. Current - самая новая запись
func (s *Service) GetWorkingHours(ctx context.Context, tenantID, userID string) (*models.WorkingHoursListResponse, error) {
	s.logger.Info("GetWorkingHours: tenant=%s, user=%s", tenantID, userID)

	records, err := s.workingHoursRepo.ListByUser(ctx, tenantID, userID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}
	if len(records) == 0 {
		s.logger.Warn("GetWorkingHours: user=%s has no working hours", userID)
		return nil, ErrWorkingHoursNotFound
	}

	resp := &models.WorkingHoursListResponse{
		Current: models.FromDomainWorkingHours(records[0]),
		History: make([]models.WorkingHoursResponse, 0, len(records)-1),
	}
	for _, r := range records[1:] {
		resp.History = append(resp.History, *models.FromDomainWorkingHours(r))
	}
	return resp, nil
}

// CreateBusyBlock создает блок занятости. Источник interview зарезервирован за бронированиями
func (s *Service) CreateBusyBlock(ctx context.Context, req *models.CreateBusyBlockRequest) (*models.BusyBlockResponse, error) {
	s.logger.Info("CreateBusyBlock: tenant=%s, user=%s, source=%s", req.TenantID, req.UserID, req.Source)

	block := req.ToDomainBusyBlock()
	if err := validateBlock(block); err != nil {
		s.logger.Warn("CreateBusyBlock: validation failed: %v", err)
		return nil, err
	}

	created, err := s.busyBlockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateBusyBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBusyBlock - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "CreateBusyBlock", req.TenantID, req.UserID)

	s.logger.Info("CreateBusyBlock: created block id=%s", created.ID)
	return models.FromDomainBusyBlock(created), nil
}

// ListBusyBlocks возвращает блоки пользователя с фильтрацией по диапазону и источнику
func (s *Service) ListBusyBlocks(ctx context.Context, req *models.ListBusyBlocksRequest) (*models.BusyBlockListResponse, error) {
	s.logger.Info("ListBusyBlocks: tenant=%s, user=%s", req.TenantID, req.UserID)

	filter := domain.BusyBlockFilter{
		TenantID: req.TenantID,
		UserID:   req.UserID,
		Start:    req.Start,
		End:      req.End,
	}
	if req.Source != nil {
		source := domain.BusyBlockSource(*req.Source)
		if !source.IsValid() {
			return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, *req.Source)
		}
		filter.Source = &source
	}
	if filter.Start != nil && filter.End != nil && !filter.Start.Before(*filter.End) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	blocks, err := s.busyBlockRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBusyBlocks: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListBusyBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusyBlockList(blocks), nil
}

// DeleteBusyBlock удаляет блок. Блоки интервью удаляются только отменой бронирования
func (s *Service) DeleteBusyBlock(ctx context.Context, tenantID, id string) error {
	s.logger.Info("DeleteBusyBlock: tenant=%s, block=%s", tenantID, id)

	block, err := s.busyBlockRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return s.mapBlockError("DeleteBusyBlock", id, err)
	}
	if block.Source == domain.BusySourceInterview {
		s.logger.Warn("DeleteBusyBlock: block id=%s mirrors an interview", id)
		return ErrManagedBlock
	}

	if err := s.busyBlockRepo.Delete(ctx, tenantID, id); err != nil {
		return s.mapBlockError("DeleteBusyBlock", id, err)
	}

	s.invalidate(ctx, "DeleteBusyBlock", tenantID, block.UserID)

	s.logger.Info("DeleteBusyBlock: deleted block id=%s", id)
	return nil
}

// invalidate сбрасывает кэш занятости. Ошибка кэша не отменяет запись
func (s *Service) invalidate(ctx context.Context, op, tenantID, userID string) {
	if err := s.cache.Invalidate(ctx, tenantID, userID); err != nil {
		s.logger.Warn("%s: failed to invalidate busy cache for user=%s: %v", op, userID, err)
	}
}

func (s *Service) mapBlockError(op, id string, err error) error {
	if errors.Is(err, busyBlockRepo.ErrBusyBlockNotFound) {
		s.logger.Warn("%s: block id=%s not found", op, id)
		return ErrBusyBlockNotFound
	}
	s.logger.Error("%s: repository error for block id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateBlock(b *domain.BusyBlock) error {
	if b.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	switch b.Source {
	case domain.BusySourceManual, domain.BusySourceCalendarSync:
	case domain.BusySourceInterview:
		return fmt.Errorf("%w: source interview is reserved for bookings", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, b.Source)
	}
	if b.StartAt.IsZero() || b.EndAt.IsZero() || !b.StartAt.Before(b.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}
	if b.EndAt.Sub(b.StartAt) > domain.MaxQueryRangeDays*24*time.Hour {
		return fmt.Errorf("%w: block longer than %d days", ErrInvalidInput, domain.MaxQueryRangeDays)
	}
	if b.Reason != nil && len(*b.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	if b.Source == domain.BusySourceCalendarSync && (b.SourceID == nil || *b.SourceID == "") {
		return fmt.Errorf("%w: sourceId is required for calendar_sync blocks", ErrInvalidInput)
	}
	return nil
}
