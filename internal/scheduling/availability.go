package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// Resolver вычисляет свободное время пользователей и панели
type Resolver struct {
	busy BusyProvider
}

// NewResolver создает резолвер доступности
func NewResolver(busy BusyProvider) *Resolver {
	return &Resolver{busy: busy}
}

// GetAvailability возвращает свободное время каждого пользователя и, для панели из нескольких
// пользователей, общее свободное время. minDuration == 0 отключает фильтрацию коротких окон.
// Пустой результат не является ошибкой
func (r *Resolver) GetAvailability(
	ctx context.Context,
	tenantID string,
	userIDs []string,
	rng interval.Interval,
	minDuration time.Duration,
) (*AvailabilityResult, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	rng = rng.UTC()

	sets, err := r.busy.BusyForPanel(ctx, tenantID, userIDs, rng)
	if err != nil {
		return nil, err
	}

	return Resolve(rng, sets, minDuration), nil
}

// GetTeamAvailability как GetAvailability, но общее время дополнительно нарезается на окна slotDuration.
// slotDuration == 0 возвращает общее время без нарезки
func (r *Resolver) GetTeamAvailability(
	ctx context.Context,
	tenantID string,
	userIDs []string,
	rng interval.Interval,
	slotDuration time.Duration,
) (*AvailabilityResult, []interval.Interval, error) {
	if slotDuration < 0 {
		return nil, nil, fmt.Errorf("scheduling: negative slot duration %s", slotDuration)
	}

	result, err := r.GetAvailability(ctx, tenantID, userIDs, rng, 0)
	if err != nil {
		return nil, nil, err
	}

	if slotDuration == 0 {
		return result, result.Combined, nil
	}
	return result, SliceFreeTime(result.Combined, slotDuration), nil
}

// Resolve вычисляет доступность по уже собранной занятости.
// Общее время считается по нефильтрованным наборам, затем фильтруется по minDuration
func Resolve(rng interval.Interval, sets []*BusySet, minDuration time.Duration) *AvailabilityResult {
	result := &AvailabilityResult{
		Range:    rng,
		Users:    make([]UserAvailability, 0, len(sets)),
		Combined: make([]interval.Interval, 0),
		Warnings: make([]Warning, 0),
	}

	var combined []interval.Interval
	for i, set := range sets {
		free := interval.Subtract(rng, set.Intervals)

		if i == 0 {
			combined = free
		} else {
			combined = interval.IntersectSets(combined, free)
		}

		if set.UnknownAvailability {
			result.Warnings = append(result.Warnings, Warning{
				UserID:  set.UserID,
				Code:    WarningUnknownAvailability,
				Message: fmt.Sprintf("user %s has no working hours configured and is treated as busy", set.UserID),
			})
		}

		result.Users = append(result.Users, UserAvailability{
			UserID:              set.UserID,
			Free:                filterDuration(free, minDuration),
			Busy:                set,
			UnknownAvailability: set.UnknownAvailability,
		})
	}

	if combined != nil {
		result.Combined = filterDuration(combined, minDuration)
	}
	return result
}

func filterDuration(intervals []interval.Interval, min time.Duration) []interval.Interval {
	if min <= 0 {
		return intervals
	}
	return interval.FilterMinDuration(intervals, min)
}
