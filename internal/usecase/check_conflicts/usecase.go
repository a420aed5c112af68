package check_conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// UseCase use case проверки конфликтов
type UseCase struct {
	busy            BusyProvider
	metrics         Metrics
	maxPanel        int
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(busy BusyProvider, metrics Metrics, maxPanel int, defaultTimezone string, logger Logger) *UseCase {
	return &UseCase{
		busy:            busy,
		metrics:         metrics,
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Execute возвращает полный список пересечений предлагаемого времени с занятостью участников
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflicts: tenant=%s, users=%v, proposed=[%s, %s)", req.TenantID, req.UserIDs,
		req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация
	if err := validateRequest(req, uc.maxPanel); err != nil {
		uc.logger.Warn("CheckConflicts: validation failed: %v", err)
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = uc.defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, tz)
	}

	// 2. Занятость участников в окне вокруг предлагаемого времени
	proposed := interval.Interval{Start: req.Start.UTC(), End: req.End.UTC()}
	sets, err := uc.busy.BusyForPanel(ctx, req.TenantID, req.UserIDs, scheduling.ConflictWindow(proposed))
	if err != nil {
		uc.logger.Error("CheckConflicts: failed to aggregate busy time: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate busy time: %v", ErrInternal, err)
	}

	// 3. Пересечения
	found := scheduling.DetectConflicts(proposed, sets, ptr.Value(req.ExcludeID))
	uc.metrics.AddConflicts("check", len(found))

	conflicts := make([]Conflict, 0, len(found))
	for _, c := range found {
		conflicts = append(conflicts, Conflict{
			UserID:       c.UserID,
			StartAt:      c.Interval.Start.In(loc),
			EndAt:        c.Interval.End.In(loc),
			OverlapStart: c.Overlap.Start.In(loc),
			OverlapEnd:   c.Overlap.End.In(loc),
			Source:       string(c.Source),
			SourceID:     c.SourceID,
			Label:        c.Label,
		})
	}

	uc.logger.Info("CheckConflicts: found %d conflicts", len(conflicts))

	return &Response{HasConflicts: len(conflicts) > 0, Conflicts: conflicts}, nil
}
