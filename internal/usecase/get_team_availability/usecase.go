package get_team_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// UseCase use case получения общего свободного времени команды
type UseCase struct {
	resolver        TeamResolver
	maxPanel        int
	defaultTimezone string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(resolver TeamResolver, maxPanel int, defaultTimezone string, logger Logger) *UseCase {
	return &UseCase{
		resolver:        resolver,
		maxPanel:        maxPanel,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Execute возвращает общее свободное время команды и, если задана длительность, окна для интервью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTeamAvailability: tenant=%s, users=%v", req.TenantID, req.UserIDs)

	// 1. Валидация
	if err := validateRequest(req, uc.maxPanel); err != nil {
		uc.logger.Warn("GetTeamAvailability: validation failed: %v", err)
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = uc.defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		uc.logger.Warn("GetTeamAvailability: unknown timezone %q", tz)
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, tz)
	}

	var slotDuration time.Duration
	if req.SlotDurationMins != nil {
		slotDuration = time.Duration(*req.SlotDurationMins) * time.Minute
	}

	// 2. Доступность и нарезка
	rng := interval.Interval{Start: req.Start.UTC(), End: req.End.UTC()}
	result, slots, err := uc.resolver.GetTeamAvailability(ctx, req.TenantID, req.UserIDs, rng, slotDuration)
	if err != nil {
		uc.logger.Error("GetTeamAvailability: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
	}

	// 3. Ответ в зоне запроса
	resp := &Response{
		Start:            rng.Start.In(loc),
		End:              rng.End.In(loc),
		Timezone:         tz,
		SlotDurationMins: req.SlotDurationMins,
		Members:          make([]Member, 0, len(result.Users)),
		Combined:         toWindows(result.Combined, loc),
		Slots:            []Window{},
		Warnings:         make([]Warning, 0, len(result.Warnings)),
	}
	if req.SlotDurationMins != nil {
		resp.Slots = toWindows(slots, loc)
	}

	for _, u := range result.Users {
		resp.Members = append(resp.Members, Member{
			UserID:              u.UserID,
			Free:                toWindows(u.Free, loc),
			UnknownAvailability: u.UnknownAvailability,
		})
	}
	for _, w := range result.Warnings {
		uc.logger.Warn("GetTeamAvailability: user=%s: %s", w.UserID, w.Message)
		resp.Warnings = append(resp.Warnings, Warning{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}

	uc.logger.Info("GetTeamAvailability: %d combined windows, %d slots", len(resp.Combined), len(resp.Slots))

	return resp, nil
}

func toWindows(intervals []interval.Interval, loc *time.Location) []Window {
	windows := make([]Window, 0, len(intervals))
	for _, iv := range intervals {
		windows = append(windows, Window{Start: iv.Start.In(loc), End: iv.End.In(loc)})
	}
	return windows
}
