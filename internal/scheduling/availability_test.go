package scheduling

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

func TestGetAvailability_WorkingHoursOnly(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}

	res, err := NewResolver(src.aggregator()).GetAvailability(context.Background(), "t1", []string{"u1"}, wholeDay(), 0)
	require.NoError(t, err)

	require.Len(t, res.Users, 1)
	assert.Equal(t, []interval.Interval{iv(9, 0, 17, 0)}, res.Users[0].Free)
	assert.Empty(t, res.Warnings)
}

func TestGetAvailability_BusyBlockSplitsDay(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}
	src.blocks["u1"] = []*domain.BusyBlock{{
		ID: "b1", UserID: "u1", StartAt: at(12, 0), EndAt: at(13, 0), Source: domain.BusySourceManual,
	}}

	res, err := NewResolver(src.aggregator()).GetAvailability(context.Background(), "t1", []string{"u1"}, wholeDay(), 0)
	require.NoError(t, err)

	assert.Equal(t, []interval.Interval{iv(9, 0, 12, 0), iv(13, 0, 17, 0)}, res.Users[0].Free)
}

func TestGetAvailability_CombinedPanel(t *testing.T) {
	src := newFakeSources()
	src.workingHours["a"] = []*domain.WorkingHours{nineToFive("a", "UTC")}
	src.workingHours["b"] = []*domain.WorkingHours{nineToFive("b", "UTC")}
	src.interviews = []*domain.Interview{{
		ID: "i1", CandidateID: "c1", InterviewerIDs: []string{"a"},
		StartAt: at(14, 0), EndAt: at(15, 0), Status: domain.InterviewStatusScheduled,
	}}

	resolver := NewResolver(src.aggregator())

	res, err := resolver.GetAvailability(context.Background(), "t1", []string{"a", "b"}, wholeDay(), 0)
	require.NoError(t, err)
	assert.Equal(t, []interval.Interval{iv(9, 0, 14, 0), iv(15, 0, 17, 0)}, res.Combined)

	reversed, err := resolver.GetAvailability(context.Background(), "t1", []string{"b", "a"}, wholeDay(), 0)
	require.NoError(t, err)
	assert.Equal(t, res.Combined, reversed.Combined)
}

func TestGetAvailability_UnknownAvailabilityIsBusyWithWarning(t *testing.T) {
	src := newFakeSources()
	src.workingHours["a"] = []*domain.WorkingHours{nineToFive("a", "UTC")}

	res, err := NewResolver(src.aggregator()).GetAvailability(context.Background(), "t1", []string{"a", "ghost"}, wholeDay(), 0)
	require.NoError(t, err)

	assert.Empty(t, res.Combined)
	assert.Empty(t, res.Users[1].Free)
	assert.True(t, res.Users[1].UnknownAvailability)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "ghost", res.Warnings[0].UserID)
	assert.Equal(t, WarningUnknownAvailability, res.Warnings[0].Code)
}

func TestGetAvailability_MinDurationFilter(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}
	src.blocks["u1"] = []*domain.BusyBlock{{
		ID: "b1", UserID: "u1", StartAt: at(9, 30), EndAt: at(16, 30), Source: domain.BusySourceManual,
	}}

	res, err := NewResolver(src.aggregator()).GetAvailability(context.Background(), "t1", []string{"u1"}, wholeDay(), 45*time.Minute)
	require.NoError(t, err)
	assert.Empty(t, res.Users[0].Free)
}

func TestGetTeamAvailability_SlicesCombined(t *testing.T) {
	src := newFakeSources()
	src.workingHours["a"] = []*domain.WorkingHours{nineToFive("a", "UTC")}
	src.workingHours["b"] = []*domain.WorkingHours{{
		UserID: "b", Timezone: "UTC", Weekly: weekdays("15:00", "17:30"),
	}}

	_, windows, err := NewResolver(src.aggregator()).GetTeamAvailability(context.Background(), "t1", []string{"a", "b"}, wholeDay(), 45*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []interval.Interval{iv(15, 0, 15, 45), iv(15, 45, 16, 30)}, windows)
}

func TestAggregator_DeduplicatesMirroredInterviewBlocks(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}
	src.interviews = []*domain.Interview{{
		ID: "i1", InterviewerIDs: []string{"u1"}, StartAt: at(10, 0), EndAt: at(11, 0),
		Status: domain.InterviewStatusScheduled, Stage: ptr.Ptr("technical"),
	}}
	src.blocks["u1"] = []*domain.BusyBlock{{
		ID: "b1", UserID: "u1", StartAt: at(10, 0), EndAt: at(11, 0),
		Source: domain.BusySourceInterview, SourceID: ptr.Ptr("i1"),
	}}

	set, err := src.aggregator().Busy(context.Background(), "t1", "u1", wholeDay())
	require.NoError(t, err)

	var interviews int
	for _, e := range set.Entries {
		if e.Source == BusySourceInterview {
			interviews++
			assert.Equal(t, "i1", e.SourceID)
			assert.Equal(t, "technical", e.Label)
		}
	}
	assert.Equal(t, 1, interviews)
	assert.False(t, set.UnknownAvailability)
}

func TestAggregator_CancelledInterviewIgnored(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}
	src.interviews = []*domain.Interview{{
		ID: "i1", InterviewerIDs: []string{"u1"}, StartAt: at(10, 0), EndAt: at(11, 0),
		Status: domain.InterviewStatusCancelled,
	}}

	set, err := src.aggregator().Busy(context.Background(), "t1", "u1", wholeDay())
	require.NoError(t, err)
	assert.Equal(t, []interval.Interval{iv(0, 0, 9, 0), iv(17, 0, 24, 0)}, set.Intervals)
}

func TestAggregator_InvalidBlockRejected(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}
	src.blocks["u1"] = []*domain.BusyBlock{{ID: "bad", UserID: "u1", StartAt: at(11, 0), EndAt: at(10, 0)}}

	_, err := src.aggregator().Busy(context.Background(), "t1", "u1", wholeDay())
	assert.ErrorIs(t, err, ErrInvalidSourceData)
}

func TestAggregator_UsesCache(t *testing.T) {
	src := newFakeSources()
	src.workingHours["u1"] = []*domain.WorkingHours{nineToFive("u1", "UTC")}
	cache := &memCache{sets: make(map[string]*BusySet)}
	agg := src.aggregator(WithCache(cache, nil))

	first, err := agg.Busy(context.Background(), "t1", "u1", wholeDay())
	require.NoError(t, err)
	second, err := agg.Busy(context.Background(), "t1", "u1", wholeDay())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, src.calls)
}

func TestAggregator_EmptyPanel(t *testing.T) {
	_, err := newFakeSources().aggregator().BusyForPanel(context.Background(), "t1", nil, wholeDay())
	assert.ErrorIs(t, err, ErrEmptyPanel)
}

func TestResolve_Monotonicity(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	rng := wholeDay()

	for n := 0; n < 200; n++ {
		busy := randomBusy(r, 4)
		extra := randomBusy(r, 1)

		before := Resolve(rng, []*BusySet{{UserID: "u", Intervals: interval.Merge(busy)}}, 0)
		after := Resolve(rng, []*BusySet{{UserID: "u", Intervals: interval.Union(busy, extra)}}, 0)

		assert.LessOrEqual(t,
			interval.TotalDuration(after.Users[0].Free),
			interval.TotalDuration(before.Users[0].Free))
		for _, f := range after.Users[0].Free {
			assert.True(t, interval.IsContained(f, before.Users[0].Free))
		}
	}
}

func TestResolve_PanelCommutative(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	rng := wholeDay()

	for n := 0; n < 200; n++ {
		a := &BusySet{UserID: "a", Intervals: interval.Merge(randomBusy(r, 3))}
		b := &BusySet{UserID: "b", Intervals: interval.Merge(randomBusy(r, 3))}

		ab := Resolve(rng, []*BusySet{a, b}, 0)
		ba := Resolve(rng, []*BusySet{b, a}, 0)
		assert.Equal(t, ab.Combined, ba.Combined)
	}
}

func randomBusy(r *rand.Rand, n int) []interval.Interval {
	out := make([]interval.Interval, 0, n)
	for i := 0; i < n; i++ {
		start := r.Intn(23 * 60)
		length := 15 + r.Intn(120)
		end := start + length
		if end > 24*60 {
			end = 24 * 60
		}
		out = append(out, interval.Interval{
			Start: wednesday.Add(time.Duration(start) * time.Minute),
			End:   wednesday.Add(time.Duration(end) * time.Minute),
		})
	}
	return out
}
