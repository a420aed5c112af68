package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// Ranker оценивает слоты по предпочтениям и ограничениям на интервалы между интервью
type Ranker struct {
	defaultMax int
	maxLimit   int
}

// NewRanker создает ранжировщик. defaultMax применяется, если лимит не передан
func NewRanker(defaultMax int) *Ranker {
	if defaultMax <= 0 {
		defaultMax = domain.DefaultMaxSuggestions
	}
	if defaultMax > domain.MaxSuggestionsLimit {
		defaultMax = domain.MaxSuggestionsLimit
	}
	return &Ranker{defaultMax: defaultMax, maxLimit: domain.MaxSuggestionsLimit}
}

// Rank оценивает слоты, сортирует по убыванию оценки (при равенстве - по началу) и обрезает до лимита
func (r *Ranker) Rank(slots []interval.Interval, in RankInput) []Suggestion {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	limit := in.MaxSuggestions
	if limit <= 0 {
		limit = r.defaultMax
	}
	if limit > r.maxLimit {
		limit = r.maxLimit
	}

	commitments := interval.Merge(in.Commitments)
	candidateInterviews := interval.Merge(in.CandidateInterviews)
	minGap := time.Duration(in.Preferences.MinGapBetweenInterviewsMins) * time.Minute

	suggestions := make([]Suggestion, 0, len(slots))
	for _, slot := range slots {
		score := domain.BaseScore
		reasons := make([]string, 0)
		local := slot.Start.In(loc)

		if tod := in.Preferences.PreferredTimeOfDay; tod.Matches(local.Hour()) {
			score += domain.TimeOfDayBonus
			reasons = append(reasons, fmt.Sprintf("matches preferred time of day (%s)", tod))
		}

		if in.Preferences.PrefersDay(local.Weekday()) {
			score += domain.PreferredDayBonus
			reasons = append(reasons, fmt.Sprintf("falls on preferred day (%s)", local.Weekday()))
		}

		if in.Preferences.AvoidBackToBack && tooClose(slot, commitments, domain.BackToBackGap) {
			score -= domain.BackToBackPenalty
			reasons = append(reasons, "back-to-back with another interview")
		}

		if in.HasCandidate && tooClose(slot, candidateInterviews, minGap) {
			score -= domain.CandidateGapPenalty
			reasons = append(reasons, fmt.Sprintf("less than %d minutes from another candidate interview",
				in.Preferences.MinGapBetweenInterviewsMins))
		}

		availability := make(map[string]bool, len(in.UserIDs))
		for _, id := range in.UserIDs {
			free, ok := in.UserFree[id]
			availability[id] = !ok || interval.IsContained(slot, free)
		}

		suggestions = append(suggestions, Suggestion{
			Interval:         slot,
			Score:            clampScore(score),
			Reasons:          reasons,
			UserAvailability: availability,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Interval.Start.Before(suggestions[j].Interval.Start)
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// tooClose сообщает, что слот пересекается с событием или отстоит от него меньше чем на gap.
// При gap == 0 учитывается только пересечение
func tooClose(slot interval.Interval, events []interval.Interval, gap time.Duration) bool {
	for _, e := range events {
		if slot.Overlaps(e) {
			return true
		}
		if gap <= 0 {
			continue
		}
		// e до слота
		if !e.End.After(slot.Start) && slot.Start.Sub(e.End) < gap {
			return true
		}
		// e после слота
		if !e.Start.Before(slot.End) && e.Start.Sub(slot.End) < gap {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < domain.MinScore {
		return domain.MinScore
	}
	if score > domain.MaxScore {
		return domain.MaxScore
	}
	return score
}
