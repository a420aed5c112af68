package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

const conflictLookaround = 24 * time.Hour

// DetectConflicts возвращает все записи занятости участников, пересекающие proposed.
// Записи с SourceID == excludeID пропускаются, чтобы бронирование не конфликтовало само с собой.
// Сами записи не обрезаются: Interval - границы события, Overlap - общая часть с proposed
func DetectConflicts(proposed interval.Interval, sets []*BusySet, excludeID string) []Conflict {
	conflicts := make([]Conflict, 0)

	for _, set := range sets {
		for _, e := range set.Entries {
			if excludeID != "" && e.SourceID == excludeID {
				continue
			}
			overlap, ok := interval.Intersect(proposed, e.Interval)
			if !ok {
				continue
			}
			conflicts = append(conflicts, Conflict{
				UserID:   set.UserID,
				Interval: e.Interval,
				Overlap:  overlap,
				Source:   e.Source,
				SourceID: e.SourceID,
				Label:    e.Label,
			})
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].Interval.Start.Before(conflicts[j].Interval.Start)
	})
	return conflicts
}

// ConflictWindow окно выборки занятости вокруг предлагаемого времени.
// Расширение на сутки захватывает события, начавшиеся раньше
func ConflictWindow(proposed interval.Interval) interval.Interval {
	return interval.Interval{
		Start: proposed.Start.Add(-conflictLookaround),
		End:   proposed.End.Add(conflictLookaround),
	}
}
