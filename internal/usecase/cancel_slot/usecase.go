package cancel_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// UseCase use case отмены бронирования
type UseCase struct {
	slotRepo      SlotRepository
	interviewRepo InterviewRepository
	busyRepo      BusyBlockRepository
	cache         CacheInvalidator
	publisher     EventPublisher
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	interviewRepo InterviewRepository,
	busyRepo BusyBlockRepository,
	cache CacheInvalidator,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		interviewRepo: interviewRepo,
		busyRepo:      busyRepo,
		cache:         cache,
		publisher:     publisher,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute переводит слот BOOKED -> CANCELLED, отменяет интервью и снимает зеркальную занятость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSlot: tenant=%s, slot=%s", req.TenantID, req.SlotID)

	// 1. Валидация
	if req.TenantID == "" || req.SlotID == "" {
		return nil, fmt.Errorf("%w: tenantID and slotId are required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	var (
		cancelled *domain.InterviewSlot
		released  []string
	)

	// 2. Отмена в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := uc.slotRepo.GetByID(txCtx, req.TenantID, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if err := slot.TransitionTo(domain.SlotStatusCancelled); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if err := uc.slotRepo.UpdateStatus(txCtx, slot.TenantID, slot.ID, domain.SlotStatusBooked, domain.SlotStatusCancelled); err != nil {
			if errors.Is(err, slotRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
		}

		released = slot.Participants.UserIDs()

		if slot.InterviewID != nil {
			if err := uc.interviewRepo.UpdateStatus(txCtx, slot.TenantID, *slot.InterviewID, domain.InterviewStatusCancelled); err != nil {
				return fmt.Errorf("%w: failed to cancel interview: %v", ErrInternal, err)
			}

			userIDs, err := uc.busyRepo.DeleteBySource(txCtx, slot.TenantID, domain.BusySourceInterview, *slot.InterviewID)
			if err != nil {
				return fmt.Errorf("%w: failed to release busy blocks: %v", ErrInternal, err)
			}
			for _, id := range userIDs {
				if !contains(released, id) {
					released = append(released, id)
				}
			}
		}

		cancelled = slot
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrInvalidTransition) {
			uc.logger.Warn("CancelSlot: slot=%s rejected: %v", req.SlotID, err)
			return nil, err
		}
		uc.logger.Error("CancelSlot: failed to cancel slot=%s: %v", req.SlotID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CancelSlot: slot=%s cancelled, released %d users", cancelled.ID, len(released))

	// 3. Кэш и событие
	if err := uc.cache.Invalidate(ctx, req.TenantID, released...); err != nil {
		uc.logger.Warn("CancelSlot: failed to invalidate busy cache: %v", err)
	}

	event := events.SlotEvent{
		Type:           events.TypeSlotCancelled,
		TenantID:       cancelled.TenantID,
		SlotID:         cancelled.ID,
		InterviewID:    cancelled.InterviewID,
		InterviewerIDs: cancelled.Participants.UserIDs(),
		StartAt:        cancelled.StartAt.UTC(),
		EndAt:          cancelled.EndAt.UTC(),
		Reason:         req.Reason,
	}
	if c, ok := cancelled.Participants.Candidate(); ok {
		event.CandidateID = ptr.Ptr(c.ID)
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CancelSlot: failed to publish %s for slot=%s: %v", event.Type, cancelled.ID, err)
	}

	return &Response{
		SlotID:      cancelled.ID,
		InterviewID: cancelled.InterviewID,
		Status:      cancelled.Status,
	}, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
