package get_suggestions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	ruleRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/rule"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// UseCase use case ранжированных предложений времени
type UseCase struct {
	resolver        AvailabilityResolver
	ruleRepo        RuleRepository
	candidates      CandidateInterviews
	ranker          Ranker
	timeProvider    TimeProvider
	maxPanel        int
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver AvailabilityResolver,
	ruleRepo RuleRepository,
	candidates CandidateInterviews,
	ranker Ranker,
	maxPanel int,
	defaultTimezone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		ruleRepo:        ruleRepo,
		candidates:      candidates,
		ranker:          ranker,
		timeProvider:    &RealTimeProvider{},
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Execute возвращает лучшие варианты времени для панели
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSuggestions: tenant=%s, users=%v, duration=%d", req.TenantID, req.UserIDs, req.DurationMins)
	started := uc.timeProvider.Now()

	// 1. Валидация и разбор предпочтений
	prefs, err := validateRequest(req, uc.maxPanel)
	if err != nil {
		uc.logger.Warn("GetSuggestions: validation failed: %v", err)
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

	// 2. Правило планирования
	rule, err := uc.ruleRepo.GetWithFallback(ctx, req.TenantID, req.RuleID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, ptr.Value(req.RuleID))
		}
		uc.logger.Error("GetSuggestions: failed to resolve rule: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve rule: %v", ErrInternal, err)
	}

	// 3. Общее свободное время. Занятость берется с запасом BackToBackGap с обеих сторон,
	// чтобы интервью у границ диапазона учитывались в штрафе за интервью подряд
	duration := time.Duration(req.DurationMins) * time.Minute
	rng := interval.Interval{Start: req.Start.UTC(), End: req.End.UTC()}
	lookup := interval.Interval{Start: rng.Start.Add(-domain.BackToBackGap), End: rng.End.Add(domain.BackToBackGap)}
	availability, err := uc.resolver.GetAvailability(ctx, req.TenantID, req.UserIDs, lookup, duration)
	if err != nil {
		uc.logger.Error("GetSuggestions: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	// 4. Кандидатные слоты только внутри запрошенного диапазона
	slots := scheduling.GenerateSlots(interval.Clip(availability.Combined, rng), scheduling.SlotParams{
		Duration: duration,
		Rule:     rule,
		Now:      uc.timeProvider.Now(),
	})

	// 5. Интервью кандидата (для правила минимального перерыва)
	var candidateInterviews []interval.Interval
	if req.CandidateID != nil {
		interviews, err := uc.candidates.ListActiveByCandidate(ctx, req.TenantID, *req.CandidateID)
		if err != nil {
			uc.logger.Error("GetSuggestions: failed to load candidate interviews: %v", err)
			return nil, fmt.Errorf("%w: failed to load candidate interviews: %v", ErrInternal, err)
		}
		for _, iv := range interviews {
			candidateInterviews = append(candidateInterviews, iv.Interval())
		}
	}

	// 6. Ранжирование
	ranked := uc.ranker.Rank(slots, scheduling.RankInput{
		UserIDs:             req.UserIDs,
		Preferences:         prefs,
		Location:            loc,
		Commitments:         commitments(availability),
		CandidateInterviews: candidateInterviews,
		HasCandidate:        req.CandidateID != nil,
		MaxSuggestions:      ptr.Value(req.MaxSuggestions),
		UserFree:            userFree(availability),
	})

	resp := &Response{
		Timezone:            tz,
		Suggestions:         make([]Suggestion, 0, len(ranked)),
		Warnings:            make([]Warning, 0, len(availability.Warnings)),
		TotalAvailableSlots: len(slots),
		QueryStart:          rng.Start.In(loc),
		QueryEnd:            rng.End.In(loc),
	}
	for _, s := range ranked {
		resp.Suggestions = append(resp.Suggestions, Suggestion{
			StartAt:          s.Interval.Start.In(loc),
			EndAt:            s.Interval.End.In(loc),
			Score:            s.Score,
			Reasons:          s.Reasons,
			UserAvailability: s.UserAvailability,
		})
	}
	for _, w := range availability.Warnings {
		resp.Warnings = append(resp.Warnings, Warning{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}

	resp.ProcessingTime = uc.timeProvider.Now().Sub(started)

	uc.logger.Info("GetSuggestions: %d candidate slots, returned %d in %v", len(slots), len(resp.Suggestions), resp.ProcessingTime)

	return resp, nil
}

// commitments зафиксированные интервью любого участника панели
func userFree(result *scheduling.AvailabilityResult) map[string][]interval.Interval {
	out := make(map[string][]interval.Interval, len(result.Users))
	for _, u := range result.Users {
		out[u.UserID] = u.Free
	}
	return out
}

func commitments(result *scheduling.AvailabilityResult) []interval.Interval {
	var out []interval.Interval
	for _, u := range result.Users {
		if u.Busy == nil {
			continue
		}
		for _, e := range u.Busy.Entries {
			if e.Source == scheduling.BusySourceInterview {
				out = append(out, e.Interval)
			}
		}
	}
	return out
}
