package reschedule_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// UseCase use case переноса слота
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

// Execute переносит слот на новое время. Статус слота не меняется.
// Для забронированного слота вместе с ним переносятся интервью и зеркальные блоки занятости.
// Конфликты нового времени возвращаются в ответе и не отменяют перенос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleSlot: tenant=%s, slot=%s, new=[%s, %s)", req.TenantID, req.SlotID,
		req.NewStart.Format(time.RFC3339), req.NewEnd.Format(time.RFC3339))

	now := uc.timeProvider.Now().UTC()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("RescheduleSlot: validation failed: %v", err)
		return nil, err
	}

	target := interval.Interval{Start: req.NewStart.UTC(), End: req.NewEnd.UTC()}

	var (
		moved    *domain.InterviewSlot
		previous interval.Interval
		affected []string
	)

	// 2. Перенос в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Слот с блокировкой строки
		slot, err := uc.slotRepo.GetByID(txCtx, req.TenantID, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		if !slot.CanBeRescheduled() {
			return fmt.Errorf("%w: slot is %s", ErrInvalidTransition, slot.Status)
		}

		previous = slot.Interval()

		// 2.2. Новое время слота
		slot.StartAt = target.Start
		slot.EndAt = target.End
		slot.Metadata.RescheduleReason = req.Reason
		slot.UpdatedAt = now

		if err := uc.slotRepo.Reschedule(txCtx, slot); err != nil {
			if errors.Is(err, slotRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			return fmt.Errorf("%w: failed to reschedule slot: %w", ErrInternal, err)
		}

		affected = slot.Participants.UserIDs()

		// 2.3. Интервью и его блоки занятости
		if slot.InterviewID != nil {
			if err := uc.interviewRepo.UpdateTime(txCtx, slot.TenantID, *slot.InterviewID, target); err != nil {
				return fmt.Errorf("%w: failed to move interview: %w", ErrInternal, err)
			}

			userIDs, err := uc.busyRepo.MoveBySource(txCtx, slot.TenantID, domain.BusySourceInterview, *slot.InterviewID, target)
			if err != nil {
				return fmt.Errorf("%w: failed to move busy blocks: %w", ErrInternal, err)
			}
			affected = appendMissing(affected, userIDs)
		}

		moved = slot
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrInvalidTransition) {
			uc.logger.Warn("RescheduleSlot: slot=%s rejected: %v", req.SlotID, err)
			return nil, err
		}
		uc.logger.Error("RescheduleSlot: failed to reschedule slot=%s: %v", req.SlotID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleSlot: slot=%s moved from %s to %s", moved.ID, previous, target)

	// 3. Сбрасываем кэш занятости
	if err := uc.cache.Invalidate(ctx, req.TenantID, affected...); err != nil {
		uc.logger.Warn("RescheduleSlot: failed to invalidate busy cache: %v", err)
	}

	// 4. Конфликты нового времени, кроме самого интервью
	conflicts := uc.detectConflicts(ctx, moved, target)

	// 5. Событие
	event := events.SlotEvent{
		Type:           events.TypeSlotRescheduled,
		TenantID:       moved.TenantID,
		SlotID:         moved.ID,
		InterviewID:    moved.InterviewID,
		InterviewerIDs: moved.Participants.UserIDs(),
		StartAt:        target.Start,
		EndAt:          target.End,
		PreviousStart:  ptr.Ptr(previous.Start),
		PreviousEnd:    ptr.Ptr(previous.End),
		Reason:         req.Reason,
	}
	if c, ok := moved.Participants.Candidate(); ok {
		event.CandidateID = ptr.Ptr(c.ID)
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("RescheduleSlot: failed to publish %s for slot=%s: %v", event.Type, moved.ID, err)
	}

	return &Response{
		SlotID:        moved.ID,
		InterviewID:   moved.InterviewID,
		Status:        moved.Status,
		StartAt:       target.Start,
		EndAt:         target.End,
		PreviousStart: previous.Start,
		PreviousEnd:   previous.End,
		Timezone:      moved.Timezone,
		HasConflicts:  len(conflicts) > 0,
		Conflicts:     conflicts,
	}, nil
}

// detectConflicts проверяет пересечение нового времени с другой занятостью участников
func (uc *UseCase) detectConflicts(ctx context.Context, slot *domain.InterviewSlot, target interval.Interval) []Conflict {
	sets, err := uc.busy.BusyForPanel(ctx, slot.TenantID, slot.Participants.UserIDs(), scheduling.ConflictWindow(target))
	if err != nil {
		uc.logger.Warn("RescheduleSlot: conflict check skipped for slot=%s: %v", slot.ID, err)
		return []Conflict{}
	}

	found := scheduling.DetectConflicts(target, sets, ptr.Value(slot.InterviewID))
	uc.metrics.AddConflicts("reschedule", len(found))
	if len(found) > 0 {
		uc.logger.Warn("RescheduleSlot: slot=%s has %d conflicts at new time", slot.ID, len(found))
	}

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

func appendMissing(ids []string, more []string) []string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, id := range more {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
