package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// UseCase use case получения свободного времени
type UseCase struct {
	resolver        AvailabilityResolver
	maxPanel        int
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver AvailabilityResolver, maxPanel int, defaultTimezone string, logger Logger) *UseCase {
	return &UseCase{
		resolver:        resolver,
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Execute возвращает свободное время каждого пользователя и общее время панели
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tenant=%s, users=%v, range=[%s, %s)",
		req.TenantID, req.UserIDs, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxPanel); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Зона ответа
	tz := req.Timezone
	if tz == "" {
		tz = uc.defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		uc.logger.Warn("GetAvailability: unknown timezone %q", tz)
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, tz)
	}

	var minDuration time.Duration
	if req.DurationMins != nil {
		minDuration = time.Duration(*req.DurationMins) * time.Minute
	}

	// 3. Вычисляем доступность
	rng := interval.Interval{Start: req.Start.UTC(), End: req.End.UTC()}
	result, err := uc.resolver.GetAvailability(ctx, req.TenantID, req.UserIDs, rng, minDuration)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	for _, w := range result.Warnings {
		uc.logger.Warn("GetAvailability: user=%s: %s", w.UserID, w.Message)
	}

	uc.logger.Info("GetAvailability: found %d combined windows", len(result.Combined))

	return toResponse(result, tz, loc), nil
}

func toResponse(result *scheduling.AvailabilityResult, tz string, loc *time.Location) *Response {
	resp := &Response{
		Start:    result.Range.Start.In(loc),
		End:      result.Range.End.In(loc),
		Timezone: tz,
		Users:    make([]UserFree, 0, len(result.Users)),
		Combined: toWindows(result.Combined, loc),
		Warnings: make([]Warning, 0, len(result.Warnings)),
	}

	for _, u := range result.Users {
		resp.Users = append(resp.Users, UserFree{
			UserID:              u.UserID,
			Free:                toWindows(u.Free, loc),
			UnknownAvailability: u.UnknownAvailability,
		})
	}

	for _, w := range result.Warnings {
		resp.Warnings = append(resp.Warnings, Warning{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}

	return resp
}

func toWindows(intervals []interval.Interval, loc *time.Location) []Window {
	windows := make([]Window, 0, len(intervals))
	for _, iv := range intervals {
		windows = append(windows, Window{Start: iv.Start.In(loc), End: iv.End.In(loc)})
	}
	return windows
}
