package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

func TestRank_NoPreferences(t *testing.T) {
	slots := []interval.Interval{iv(14, 0, 15, 0), iv(9, 0, 10, 0)}

	got := NewRanker(0).Rank(slots, RankInput{UserIDs: []string{"a"}})
	require.Len(t, got, 2)
	for _, s := range got {
		assert.Equal(t, domain.BaseScore, s.Score)
		assert.Empty(t, s.Reasons)
		assert.True(t, s.UserAvailability["a"])
	}
	assert.Equal(t, at(9, 0), got[0].Interval.Start, "ties broken by earliest start")
}

func TestRank_TimeOfDayAndDay(t *testing.T) {
	slots := []interval.Interval{iv(9, 0, 10, 0), iv(14, 0, 15, 0), iv(18, 0, 19, 0)}

	got := NewRanker(0).Rank(slots, RankInput{
		Preferences: domain.SlotPreferences{
			PreferredTimeOfDay: domain.TimeOfDayAfternoon,
			PreferredDays:      []time.Weekday{time.Wednesday},
		},
	})

	require.Len(t, got, 3)
	assert.Equal(t, at(14, 0), got[0].Interval.Start)
	assert.Equal(t, 85, got[0].Score)
	assert.Len(t, got[0].Reasons, 2)
	assert.Equal(t, 65, got[1].Score)
	assert.Equal(t, at(9, 0), got[1].Interval.Start)
}

func TestRank_TimeOfDayUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 02:00 UTC = 11:00 в Токио
	got := NewRanker(0).Rank([]interval.Interval{iv(2, 0, 3, 0)}, RankInput{
		Location:    loc,
		Preferences: domain.SlotPreferences{PreferredTimeOfDay: domain.TimeOfDayMorning},
	})
	assert.Equal(t, 70, got[0].Score)
}

func TestRank_AnyTimeOfDayIsNeutral(t *testing.T) {
	got := NewRanker(0).Rank([]interval.Interval{iv(9, 0, 10, 0)}, RankInput{
		Preferences: domain.SlotPreferences{PreferredTimeOfDay: domain.TimeOfDayAny},
	})
	assert.Equal(t, domain.BaseScore, got[0].Score)
	assert.Empty(t, got[0].Reasons)
}

func TestRank_BackToBackPenalty(t *testing.T) {
	slots := []interval.Interval{iv(10, 10, 11, 10), iv(13, 0, 14, 0)}

	got := NewRanker(0).Rank(slots, RankInput{
		Preferences: domain.SlotPreferences{AvoidBackToBack: true},
		Commitments: []interval.Interval{iv(9, 0, 10, 0)},
	})

	require.Len(t, got, 2)
	assert.Equal(t, at(13, 0), got[0].Interval.Start)
	assert.Equal(t, 25, got[1].Score)
	assert.Contains(t, got[1].Reasons, "back-to-back with another interview")
}

func TestRank_CandidateGapOnlyWithCandidate(t *testing.T) {
	slots := []interval.Interval{iv(11, 0, 12, 0)}
	in := RankInput{
		Preferences:         domain.SlotPreferences{MinGapBetweenInterviewsMins: 120},
		CandidateInterviews: []interval.Interval{iv(9, 0, 10, 0)},
	}

	got := NewRanker(0).Rank(slots, in)
	assert.Equal(t, domain.BaseScore, got[0].Score)

	in.HasCandidate = true
	got = NewRanker(0).Rank(slots, in)
	assert.Equal(t, 20, got[0].Score)
	require.Len(t, got[0].Reasons, 1)
}

func TestRank_ScoreClamped(t *testing.T) {
	got := NewRanker(0).Rank([]interval.Interval{iv(9, 30, 10, 30)}, RankInput{
		Preferences: domain.SlotPreferences{
			AvoidBackToBack:             true,
			MinGapBetweenInterviewsMins: 60,
		},
		Commitments:         []interval.Interval{iv(9, 0, 10, 0)},
		CandidateInterviews: []interval.Interval{iv(9, 0, 10, 0)},
		HasCandidate:        true,
	})
	assert.Equal(t, domain.MinScore, got[0].Score)
	assert.Len(t, got[0].Reasons, 2)
}

func TestRank_Truncation(t *testing.T) {
	slots := SliceFreeTime([]interval.Interval{iv(0, 0, 24, 0)}, 15*time.Minute)
	require.Len(t, slots, 96)

	assert.Len(t, NewRanker(0).Rank(slots, RankInput{}), domain.DefaultMaxSuggestions)
	assert.Len(t, NewRanker(0).Rank(slots, RankInput{MaxSuggestions: 3}), 3)
	assert.Len(t, NewRanker(0).Rank(slots, RankInput{MaxSuggestions: 500}), domain.MaxSuggestionsLimit)
}

func TestRank_UserAvailabilityFromFreeSets(t *testing.T) {
	slots := []interval.Interval{iv(9, 0, 10, 0), iv(11, 0, 12, 0)}

	got := NewRanker(0).Rank(slots, RankInput{
		UserIDs: []string{"a", "b", "c"},
		UserFree: map[string][]interval.Interval{
			"a": {iv(8, 0, 13, 0)},
			"b": {iv(8, 0, 10, 30)},
		},
	})

	require.Len(t, got, 2)
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, got[0].UserAvailability)
	assert.Equal(t, map[string]bool{"a": true, "b": false, "c": true}, got[1].UserAvailability,
		"participant without a free set is treated as available")
}
