package bulk_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

const (
	reasonCandidateBusy = "candidate already has an interview at this time"
	reasonInterviewer   = "interviewer %s has a conflict (%s)"
)

// UseCase use case массового планирования интервью
type UseCase struct {
	interviewRepo   InterviewRepository
	busyRepo        BusyBlockRepository
	busy            BusyProvider
	cache           CacheInvalidator
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxPanel        int
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	interviewRepo InterviewRepository,
	busyRepo BusyBlockRepository,
	busy BusyProvider,
	cache CacheInvalidator,
	txManager TransactionManager,
	maxPanel int,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		interviewRepo:   interviewRepo,
		busyRepo:        busyRepo,
		busy:            busy,
		cache:           cache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// placement окно кандидата
type placement struct {
	candidateID string
	window      interval.Interval
}

// Execute планирует интервью для списка кандидатов.
// SEQUENTIAL: кандидат i начинается в StartTime + i*duration; GROUP: все в StartTime.
// Кандидат пропускается, если у него уже есть интервью в этом окне или у интервьюера конфликт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BulkSchedule: tenant=%s, mode=%s, candidates=%d, interviewers=%v",
		req.TenantID, req.Mode, len(req.CandidateIDs), req.InterviewerIDs)

	// 1. Валидация
	mode, err := validateRequest(req, uc.maxPanel, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Warn("BulkSchedule: validation failed: %v", err)
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

	// 2. Окна кандидатов
	duration := time.Duration(req.DurationMins) * time.Minute
	placements := place(req.CandidateIDs, req.StartTime.UTC(), duration, mode)
	span := interval.Interval{Start: placements[0].window.Start, End: placements[len(placements)-1].window.End}

	// 3. Занятость интервьюеров на весь диапазон
	sets, err := uc.busy.BusyForPanel(ctx, req.TenantID, req.InterviewerIDs, scheduling.ConflictWindow(span))
	if err != nil {
		uc.logger.Error("BulkSchedule: failed to aggregate busy time: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate busy time: %v", ErrInternal, err)
	}

	resp := &Response{
		Total:             len(req.CandidateIDs),
		BulkBatchID:       uuid.NewString(),
		Mode:              mode,
		Created:           make([]Created, 0, len(placements)),
		SkippedCandidates: make([]Skipped, 0),
	}

	// 4. Отбор кандидатов
	accepted := make([]placement, 0, len(placements))
	for _, p := range placements {
		reason, err := uc.skipReason(ctx, req.TenantID, p, sets)
		if err != nil {
			uc.logger.Error("BulkSchedule: failed to check candidate=%s: %v", p.candidateID, err)
			return nil, fmt.Errorf("%w: failed to check candidate %s: %v", ErrInternal, p.candidateID, err)
		}
		if reason != "" {
			resp.SkippedCandidates = append(resp.SkippedCandidates, Skipped{CandidateID: p.candidateID, Reason: reason})
			continue
		}
		accepted = append(accepted, p)
	}

	// 5. Интервью и занятость в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, p := range accepted {
			created, err := uc.interviewRepo.Create(txCtx, &domain.Interview{
				TenantID:       req.TenantID,
				CandidateID:    p.candidateID,
				InterviewerIDs: req.InterviewerIDs,
				StartAt:        p.window.Start,
				EndAt:          p.window.End,
				Status:         domain.InterviewStatusScheduled,
				Stage:          req.Stage,
				BulkBatchID:    ptr.Ptr(resp.BulkBatchID),
			})
			if err != nil {
				return fmt.Errorf("failed to create interview for candidate %s: %w", p.candidateID, err)
			}
			if err := uc.busyRepo.CreateBatch(txCtx, domain.InterviewBlocks(created)); err != nil {
				return fmt.Errorf("failed to mirror busy blocks: %w", err)
			}
			resp.Created = append(resp.Created, Created{
				CandidateID: p.candidateID,
				InterviewID: created.ID,
				StartAt:     created.StartAt.In(loc),
				EndAt:       created.EndAt.In(loc),
			})
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("BulkSchedule: batch=%s failed: %v", resp.BulkBatchID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp.Scheduled = len(resp.Created)
	resp.Skipped = len(resp.SkippedCandidates)

	// 6. Сбрасываем кэш занятости интервьюеров
	if resp.Scheduled > 0 {
		if err := uc.cache.Invalidate(ctx, req.TenantID, req.InterviewerIDs...); err != nil {
			uc.logger.Warn("BulkSchedule: failed to invalidate busy cache: %v", err)
		}
	}

	uc.logger.Info("BulkSchedule: batch=%s scheduled=%d skipped=%d", resp.BulkBatchID, resp.Scheduled, resp.Skipped)

	return resp, nil
}

// skipReason возвращает причину пропуска кандидата или пустую строку
func (uc *UseCase) skipReason(ctx context.Context, tenantID string, p placement, sets []*scheduling.BusySet) (string, error) {
	interviews, err := uc.interviewRepo.ListActiveByCandidate(ctx, tenantID, p.candidateID)
	if err != nil {
		return "", err
	}
	for _, iv := range interviews {
		if iv.Interval().Overlaps(p.window) {
			return reasonCandidateBusy, nil
		}
	}

	if conflicts := scheduling.DetectConflicts(p.window, sets, ""); len(conflicts) > 0 {
		return fmt.Sprintf(reasonInterviewer, conflicts[0].UserID, conflicts[0].Source), nil
	}
	return "", nil
}

// place вычисляет окна кандидатов для режима
func place(candidateIDs []string, start time.Time, duration time.Duration, mode domain.SchedulingMode) []placement {
	out := make([]placement, 0, len(candidateIDs))
	for i, id := range candidateIDs {
		s := start
		if mode == domain.SchedulingModeSequential {
			s = start.Add(time.Duration(i) * duration)
		}
		out = append(out, placement{candidateID: id, window: interval.Interval{Start: s, End: s.Add(duration)}})
	}
	return out
}
