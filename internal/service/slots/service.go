package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/slots/models"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// Service сервис для чтения слотов и ручного создания слота
type Service struct {
	slotRepo        SlotRepository
	maxPanel        int
	defaultTimezone string
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, maxPanel int, defaultTimezone string, logger Logger) *Service {
	return &Service{
		slotRepo:        slotRepo,
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
		logger:          logger,
	}
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id string) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: fetching slot id=%s for tenant=%s", id, tenantID)

	slot, err := s.slotRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// List возвращает страницу слотов тенанта.
// Поддерживает фильтрацию по статусу, участнику и диапазону времени
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	logMsg := fmt.Sprintf("List: fetching slots for tenant=%s, page=%d", req.TenantID, req.Page)
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.UserID != nil {
		logMsg += fmt.Sprintf(", user=%s", *req.UserID)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.Start != nil && filter.End != nil && !filter.Start.Before(*filter.End) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	slots, total, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d slots", len(slots), total)
	return models.FromDomainSlotList(slots, total, filter), nil
}

// Create создает один слот AVAILABLE для панели без проверки доступности
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot for tenant=%s, panel=%v", req.TenantID, req.InterviewerIDs)

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}

	window := interval.Interval{Start: req.StartAt.UTC(), End: req.EndAt.UTC()}
	slot := scheduling.NewAvailableSlots(req.TenantID, req.OrganizerID,
		scheduling.PanelParticipants(req.InterviewerIDs), tz, []interval.Interval{window}, s.now().UTC())[0]
	slot.Metadata = req.Metadata

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%s", created.ID)
	return models.FromDomainSlot(created), nil
}

func (s *Service) validateCreate(req *models.CreateSlotRequest) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if len(req.InterviewerIDs) == 0 {
		return fmt.Errorf("%w: at least one interviewer is required", ErrInvalidInput)
	}
	if len(req.InterviewerIDs) > s.maxPanel {
		return fmt.Errorf("%w: %d interviewers, max %d", ErrPanelTooLarge, len(req.InterviewerIDs), s.maxPanel)
	}
	seen := make(map[string]struct{}, len(req.InterviewerIDs))
	for _, id := range req.InterviewerIDs {
		if id == "" {
			return fmt.Errorf("%w: empty interviewer id", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate interviewer %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}
	d := req.EndAt.Sub(req.StartAt)
	if d < domain.MinDurationMins*time.Minute || d > domain.MaxDurationMins*time.Minute {
		return fmt.Errorf("%w: duration must be within [%d, %d] minutes",
			ErrInvalidInput, domain.MinDurationMins, domain.MaxDurationMins)
	}
	if req.StartAt.Before(s.now()) {
		return fmt.Errorf("%w: startAt is in the past", ErrInvalidInput)
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}
	return nil
}
