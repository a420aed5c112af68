package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// Expand разворачивает недельный шаблон в свободные интервалы внутри rng.
// Дни перебираются в зоне записи, поэтому переходы на летнее время учитываются.
// Результат в UTC, упорядочен и склеен
func Expand(wh *domain.WorkingHours, rng interval.Interval) ([]interval.Interval, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if err := wh.Validate(); err != nil {
		return nil, err
	}

	loc, err := wh.Location()
	if err != nil {
		return nil, err
	}

	window, ok := effectiveWindow(wh, loc, rng)
	if !ok {
		return []interval.Interval{}, nil
	}

	return expandInWindow(wh, loc, window)
}

// ExpandAll разворачивает несколько записей одного пользователя.
// Если периоды действия пересекаются, побеждает запись, созданная позже
func ExpandAll(records []*domain.WorkingHours, rng interval.Interval) ([]interval.Interval, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]*domain.WorkingHours, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	covered := make([]interval.Interval, 0, len(ordered))
	free := make([]interval.Interval, 0)

	for _, wh := range ordered {
		if err := wh.Validate(); err != nil {
			return nil, fmt.Errorf("working hours %s: %w", wh.ID, err)
		}
		loc, err := wh.Location()
		if err != nil {
			return nil, err
		}

		window, ok := effectiveWindow(wh, loc, rng)
		if !ok {
			continue
		}

		// Части окна, еще не занятые более новыми записями
		visible := interval.Subtract(window, covered)
		covered = interval.Union(covered, []interval.Interval{window})
		if len(visible) == 0 {
			continue
		}

		expanded, err := expandInWindow(wh, loc, window)
		if err != nil {
			return nil, err
		}
		free = append(free, interval.IntersectSets(expanded, visible)...)
	}

	return interval.Merge(free), nil
}

// effectiveWindow пересечение rng с периодом действия записи.
// Даты действия трактуются как календарные даты в зоне записи, EffectiveTo включительно
func effectiveWindow(wh *domain.WorkingHours, loc *time.Location, rng interval.Interval) (interval.Interval, bool) {
	window := rng.UTC()

	if wh.EffectiveFrom != nil {
		y, m, d := wh.EffectiveFrom.Date()
		from := time.Date(y, m, d, 0, 0, 0, 0, loc).UTC()
		if from.After(window.Start) {
			window.Start = from
		}
	}

	if wh.EffectiveTo != nil {
		y, m, d := wh.EffectiveTo.Date()
		to := time.Date(y, m, d+1, 0, 0, 0, 0, loc).UTC()
		if to.Before(window.End) {
			window.End = to
		}
	}

	if !window.Start.Before(window.End) {
		return interval.Interval{}, false
	}
	return window, true
}

func expandInWindow(wh *domain.WorkingHours, loc *time.Location, window interval.Interval) ([]interval.Interval, error) {
	free := make([]interval.Interval, 0)

	y, m, d := window.Start.In(loc).Date()
	for i := 0; ; i++ {
		// time.Date нормализует день, поэтому переход через месяц и DST корректен
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		if !day.Before(window.End) {
			break
		}

		for _, p := range wh.PatternsFor(day.Weekday()) {
			start, err := p.Start.On(day, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidWorkingHours, err)
			}
			end, err := p.End.On(day, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidWorkingHours, err)
			}
			// Окно может схлопнуться, если попадает в пропущенный при переводе часов час
			if !start.Before(end) {
				continue
			}
			free = append(free, interval.Interval{Start: start.UTC(), End: end.UTC()})
		}
	}

	return interval.Merge(interval.Clip(free, window)), nil
}
