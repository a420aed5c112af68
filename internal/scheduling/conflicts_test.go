package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

func TestDetectConflicts_OverlappingInterview(t *testing.T) {
	src := newFakeSources()
	src.workingHours["a"] = []*domain.WorkingHours{nineToFive("a", "UTC")}
	src.interviews = []*domain.Interview{
		{ID: "moving", InterviewerIDs: []string{"a"}, StartAt: at(10, 0), EndAt: at(11, 0), Status: domain.InterviewStatusScheduled},
		{ID: "other", InterviewerIDs: []string{"a"}, StartAt: at(14, 0), EndAt: at(15, 0), Status: domain.InterviewStatusScheduled},
	}

	proposed := iv(14, 30, 15, 30)
	sets, err := src.aggregator().BusyForPanel(context.Background(), "t1", []string{"a"}, ConflictWindow(proposed))
	require.NoError(t, err)

	conflicts := DetectConflicts(proposed, sets, "moving")
	require.Len(t, conflicts, 1)
	assert.Equal(t, "other", conflicts[0].SourceID)
	assert.Equal(t, BusySourceInterview, conflicts[0].Source)
	assert.Equal(t, iv(14, 0, 15, 0), conflicts[0].Interval)
	assert.Equal(t, iv(14, 30, 15, 0), conflicts[0].Overlap)
}

func TestDetectConflicts_ExcludesOwnBooking(t *testing.T) {
	src := newFakeSources()
	src.workingHours["a"] = []*domain.WorkingHours{nineToFive("a", "UTC")}
	src.interviews = []*domain.Interview{
		{ID: "self", InterviewerIDs: []string{"a"}, StartAt: at(10, 0), EndAt: at(11, 0), Status: domain.InterviewStatusScheduled},
	}

	proposed := iv(10, 30, 11, 30)
	sets, err := src.aggregator().BusyForPanel(context.Background(), "t1", []string{"a"}, ConflictWindow(proposed))
	require.NoError(t, err)

	assert.Empty(t, DetectConflicts(proposed, sets, "self"))
	assert.Len(t, DetectConflicts(proposed, sets, ""), 1)
}

func TestDetectConflicts_OutsideWorkingHoursAndUnknown(t *testing.T) {
	src := newFakeSources()
	src.workingHours["a"] = []*domain.WorkingHours{nineToFive("a", "UTC")}

	proposed := iv(16, 30, 17, 30)
	sets, err := src.aggregator().BusyForPanel(context.Background(), "t1", []string{"a", "ghost"}, ConflictWindow(proposed))
	require.NoError(t, err)

	conflicts := DetectConflicts(proposed, sets, "")
	require.Len(t, conflicts, 2)

	sources := map[string]BusySource{}
	for _, c := range conflicts {
		sources[c.UserID] = c.Source
	}
	assert.Equal(t, BusySourceWorkingHours, sources["a"])
	assert.Equal(t, BusySourceUnknownAvailability, sources["ghost"])
}

func TestDetectConflicts_TouchingIsNotConflict(t *testing.T) {
	set := &BusySet{UserID: "a", Entries: []BusyEntry{{Interval: iv(9, 0, 10, 0), Source: BusySourceManual}}}
	assert.Empty(t, DetectConflicts(iv(10, 0, 11, 0), []*BusySet{set}, ""))
}
