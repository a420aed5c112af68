package expire_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
)

const (
	defaultBatchSize = 500
	// maxBatchesPerRun ограничивает один запуск, остаток обработает следующий тик
	maxBatchesPerRun = 20
)

// Response итог запуска
type Response struct {
	Expired int
}

// UseCase use case истечения непроданных слотов
type UseCase struct {
	slotRepo     SlotRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	batchSize    int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, publisher EventPublisher, metrics Metrics, batchSize int, logger Logger) *UseCase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &UseCase{
		slotRepo:     slotRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Execute переводит в EXPIRED свободные слоты, время начала которых прошло
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	cutoff := uc.timeProvider.Now().UTC()
	resp := &Response{}

	for i := 0; i < maxBatchesPerRun; i++ {
		expired, err := uc.slotRepo.ExpireStarted(ctx, cutoff, uc.batchSize)
		if err != nil {
			uc.logger.Error("ExpireSlots: failed to expire slots: %v", err)
			return resp, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		uc.metrics.AddSlotsExpired(len(expired))
		resp.Expired += len(expired)

		for _, slot := range expired {
			event := events.SlotEvent{
				Type:           events.TypeSlotExpired,
				TenantID:       slot.TenantID,
				SlotID:         slot.ID,
				InterviewerIDs: slot.Participants.UserIDs(),
				StartAt:        slot.StartAt.UTC(),
				EndAt:          slot.EndAt.UTC(),
			}
			if err := uc.publisher.Publish(ctx, event); err != nil {
				uc.logger.Warn("ExpireSlots: failed to publish %s for slot=%s: %v", event.Type, slot.ID, err)
			}
		}

		if len(expired) < uc.batchSize {
			break
		}
	}

	if resp.Expired > 0 {
		uc.logger.Info("ExpireSlots: expired %d slots started before %s", resp.Expired, cutoff.Format(time.RFC3339))
	}
	return resp, nil
}

// Run запускает Execute с периодом interval до отмены ctx
func (uc *UseCase) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		uc.logger.Warn("ExpireSlots: background job disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	uc.logger.Info("ExpireSlots: background job started, interval=%s", interval)
	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("ExpireSlots: background job stopped")
			return
		case <-ticker.C:
			// ошибка уже залогирована, следующий тик повторит
			_, _ = uc.Execute(ctx)
		}
	}
}
