package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

const bookingSourceAPI = "api"

// UseCase use case бронирования слота
type UseCase struct {
	slotRepo      SlotRepository
	interviewRepo InterviewRepository
	busyRepo      BusyBlockRepository
	busy          BusyProvider
	cache         CacheInvalidator
	publisher     EventPublisher
	metrics       Metrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	interviewRepo InterviewRepository,
	busyRepo BusyBlockRepository,
	busy BusyProvider,
	cache CacheInvalidator,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		interviewRepo: interviewRepo,
		busyRepo:      busyRepo,
		busy:          busy,
		cache:         cache,
		publisher:     publisher,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute бронирует слот на кандидата.
// Бронирование выполняется в сериализуемой транзакции, переход AVAILABLE -> BOOKED атомарный:
// из параллельных запросов на один слот успешен ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: tenant=%s, slot=%s, candidate=%s", req.TenantID, req.SlotID, req.Candidate.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		uc.metrics.RecordBookingAttempt(resultRejected)
		return nil, err
	}

	now := uc.timeProvider.Now().UTC()

	var (
		booked    *domain.InterviewSlot
		interview *domain.Interview
	)

	// 2. Бронирование в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Слот с блокировкой строки
		slot, err := uc.slotRepo.GetByID(txCtx, req.TenantID, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 2.2. Статус и время
		if err := validateSlotState(slot, now); err != nil {
			return err
		}

		// 2.3. Интервью для панели слота
		created, err := uc.interviewRepo.Create(txCtx, &domain.Interview{
			TenantID:       slot.TenantID,
			CandidateID:    req.Candidate.ID,
			InterviewerIDs: slot.Participants.UserIDs(),
			StartAt:        slot.StartAt,
			EndAt:          slot.EndAt,
			Status:         domain.InterviewStatusScheduled,
			Stage:          req.Stage,
			SlotID:         ptr.Ptr(slot.ID),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create interview: %w", ErrInternal, err)
		}

		// 2.4. Слот: кандидат, интервью, метаданные
		if err := slot.TransitionTo(domain.SlotStatusBooked); err != nil {
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		slot.Participants = withCandidate(slot.Participants, req.Candidate)
		slot.InterviewID = ptr.Ptr(created.ID)
		meta := req.Metadata
		if meta.BookingSource == nil {
			meta.BookingSource = ptr.Ptr(bookingSourceAPI)
		}
		slot.Metadata = slot.Metadata.Merge(meta)
		slot.UpdatedAt = now

		// 2.5. Атомарный переход AVAILABLE -> BOOKED
		if err := uc.slotRepo.Book(txCtx, slot); err != nil {
			if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("%w: failed to book slot: %w", ErrInternal, err)
		}

		// 2.6. Занятость интервьюеров
		if err := uc.busyRepo.CreateBatch(txCtx, domain.InterviewBlocks(created)); err != nil {
			return fmt.Errorf("%w: failed to mirror busy blocks: %w", ErrInternal, err)
		}

		booked = slot
		interview = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyBooked):
			uc.logger.Warn("BookSlot: slot=%s already booked", req.SlotID)
			uc.metrics.RecordBookingAttempt(resultAlreadyBooked)
		case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("BookSlot: slot=%s rejected: %v", req.SlotID, err)
			uc.metrics.RecordBookingAttempt(resultRejected)
		default:
			uc.logger.Error("BookSlot: failed to book slot=%s: %v", req.SlotID, err)
			uc.metrics.RecordBookingAttempt(resultFailed)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.metrics.RecordBookingAttempt(resultBooked)
	uc.logger.Info("BookSlot: slot=%s booked, interview=%s", booked.ID, interview.ID)

	userIDs := booked.Participants.UserIDs()

	// 3. Сбрасываем кэш занятости интервьюеров
	if err := uc.cache.Invalidate(ctx, req.TenantID, userIDs...); err != nil {
		uc.logger.Warn("BookSlot: failed to invalidate busy cache: %v", err)
	}

	// 4. Конфликты носят информационный характер
	conflicts := uc.detectConflicts(ctx, booked, interview.ID)

	// 5. Событие
	event := events.SlotEvent{
		Type:           events.TypeSlotBooked,
		TenantID:       booked.TenantID,
		SlotID:         booked.ID,
		InterviewID:    ptr.Ptr(interview.ID),
		CandidateID:    ptr.Ptr(interview.CandidateID),
		InterviewerIDs: userIDs,
		StartAt:        booked.StartAt.UTC(),
		EndAt:          booked.EndAt.UTC(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("BookSlot: failed to publish %s for slot=%s: %v", event.Type, booked.ID, err)
	}

	return &Response{
		SlotID:       booked.ID,
		InterviewID:  interview.ID,
		Status:       booked.Status,
		StartAt:      booked.StartAt,
		EndAt:        booked.EndAt,
		Timezone:     booked.Timezone,
		Participants: booked.Participants,
		Metadata:     booked.Metadata,
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// detectConflicts ищет пересечения забронированного слота с другой занятостью панели.
// Ошибка получения занятости не отменяет бронирование
func (uc *UseCase) detectConflicts(ctx context.Context, slot *domain.InterviewSlot, interviewID string) []Conflict {
	proposed := slot.Interval()

	sets, err := uc.busy.BusyForPanel(ctx, slot.TenantID, slot.Participants.UserIDs(), scheduling.ConflictWindow(proposed))
	if err != nil {
		uc.logger.Warn("BookSlot: conflict check skipped for slot=%s: %v", slot.ID, err)
		return []Conflict{}
	}

	found := scheduling.DetectConflicts(proposed, sets, interviewID)
	uc.metrics.AddConflicts("book", len(found))

	conflicts := make([]Conflict, 0, len(found))
	for _, c := range found {
		conflicts = append(conflicts, Conflict{
			UserID:   c.UserID,
			StartAt:  c.Interval.Start,
			EndAt:    c.Interval.End,
			Source:   string(c.Source),
			SourceID: c.SourceID,
			Label:    c.Label,
		})
	}
	return conflicts
}

// withCandidate добавляет кандидата в участники, заменяя ранее указанного
func withCandidate(participants domain.Participants, c Candidate) domain.Participants {
	out := make(domain.Participants, 0, len(participants)+1)
	for _, p := range participants {
		if p.Type != domain.ParticipantCandidate {
			out = append(out, p)
		}
	}
	return append(out, domain.SlotParticipant{
		Type:  domain.ParticipantCandidate,
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	})
}
