package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

func noNoticeRule() *domain.SchedulingRule {
	return &domain.SchedulingRule{ID: "r1", Name: "no notice", DefaultSlotMins: 60}
}

func starts(windows []interval.Interval) []time.Time {
	out := make([]time.Time, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.Start)
	}
	return out
}

func TestGenerateSlots_HourlyAroundLunch(t *testing.T) {
	free := []interval.Interval{iv(9, 0, 12, 0), iv(13, 0, 17, 0)}

	windows := GenerateSlots(free, SlotParams{
		Duration: time.Hour,
		Rule:     noNoticeRule(),
		Now:      wednesday.AddDate(0, 0, -1),
	})

	assert.Equal(t, []time.Time{
		at(9, 0), at(10, 0), at(11, 0),
		at(13, 0), at(14, 0), at(15, 0), at(16, 0),
	}, starts(windows))
}

func TestGenerateSlots_DefaultDurationFromRule(t *testing.T) {
	rule := noNoticeRule()
	rule.DefaultSlotMins = 90

	windows := GenerateSlots([]interval.Interval{iv(9, 0, 12, 0)}, SlotParams{Rule: rule, Now: wednesday})
	assert.Equal(t, []interval.Interval{iv(9, 0, 10, 30), iv(10, 30, 12, 0)}, windows)
}

func TestGenerateSlots_MinNoticeStartsWalkAtCutoff(t *testing.T) {
	rule := noNoticeRule()
	rule.MinNoticeMins = 30

	windows := GenerateSlots([]interval.Interval{iv(9, 0, 13, 0)}, SlotParams{
		Duration: time.Hour,
		Rule:     rule,
		Now:      at(9, 50),
	})
	assert.Equal(t, []interval.Interval{iv(10, 20, 11, 20), iv(11, 20, 12, 20)}, windows)
}

func TestGenerateSlots_NowInsideIntervalKeepsEveryFittingSlot(t *testing.T) {
	windows := GenerateSlots([]interval.Interval{iv(9, 0, 11, 30)}, SlotParams{
		Duration: time.Hour,
		Rule:     noNoticeRule(),
		Now:      at(9, 10),
	})
	assert.Equal(t, []interval.Interval{iv(9, 10, 10, 10), iv(10, 10, 11, 10)}, windows)
}

func TestGenerateSlots_NoticeAfterBuffers(t *testing.T) {
	rule := noNoticeRule()
	rule.BufferBeforeMins = 15
	rule.MinNoticeMins = 10

	// 09:15 после буфера раньше отсечки 09:40
	windows := GenerateSlots([]interval.Interval{iv(9, 0, 12, 0)}, SlotParams{
		Duration: time.Hour,
		Rule:     rule,
		Now:      at(9, 30),
	})
	assert.Equal(t, []interval.Interval{iv(9, 40, 10, 40), iv(10, 40, 11, 40)}, windows)
}

func TestGenerateSlots_Buffers(t *testing.T) {
	rule := noNoticeRule()
	rule.BufferBeforeMins = 15
	rule.BufferAfterMins = 15

	windows := GenerateSlots([]interval.Interval{iv(9, 0, 12, 0)}, SlotParams{
		Duration: time.Hour,
		Rule:     rule,
		Now:      wednesday,
	})
	assert.Equal(t, []interval.Interval{iv(9, 15, 10, 15), iv(10, 15, 11, 15)}, windows)

	rule.AllowOverlapping = true
	windows = GenerateSlots([]interval.Interval{iv(9, 0, 12, 0)}, SlotParams{
		Duration: time.Hour,
		Rule:     rule,
		Now:      wednesday,
	})
	assert.Len(t, windows, 3)
}

func TestGenerateSlots_BufferEliminatesShortInterval(t *testing.T) {
	rule := noNoticeRule()
	rule.BufferBeforeMins = 30
	rule.BufferAfterMins = 45

	windows := GenerateSlots([]interval.Interval{iv(9, 0, 10, 0), iv(11, 0, 11, 30)}, SlotParams{
		Duration: 15 * time.Minute,
		Rule:     rule,
		Now:      wednesday,
	})
	assert.Empty(t, windows)
}

func TestGenerateSlots_EmptyFreeTime(t *testing.T) {
	windows := GenerateSlots(nil, SlotParams{Duration: time.Hour, Rule: noNoticeRule(), Now: wednesday})
	require.NotNil(t, windows)
	assert.Empty(t, windows)
}

func TestGenerateSlots_DurationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	durations := []time.Duration{15 * time.Minute, 30 * time.Minute, 45 * time.Minute, time.Hour}

	for n := 0; n < 200; n++ {
		free := interval.Subtract(wholeDay(), randomBusy(r, 5))
		d := durations[r.Intn(len(durations))]
		rule := noNoticeRule()
		rule.BufferBeforeMins = r.Intn(20)
		rule.BufferAfterMins = r.Intn(20)

		windows := GenerateSlots(free, SlotParams{Duration: d, Rule: rule, Now: wednesday})
		for i, w := range windows {
			assert.Equal(t, d, w.Duration())
			assert.True(t, interval.IsContained(w, free))
			if i > 0 {
				assert.False(t, w.Overlaps(windows[i-1]))
			}
		}
	}
}

func TestNewAvailableSlots(t *testing.T) {
	panel := PanelParticipants([]string{"a", "b"})
	slots := NewAvailableSlots("t1", nil, panel, "Europe/Berlin", []interval.Interval{iv(9, 0, 10, 0)}, wednesday)

	require.Len(t, slots, 1)
	assert.Equal(t, domain.SlotStatusAvailable, slots[0].Status)
	assert.Equal(t, []string{"a", "b"}, slots[0].Participants.UserIDs())
	_, hasCandidate := slots[0].Participants.Candidate()
	assert.False(t, hasCandidate)
}

func TestSliceFreeTime(t *testing.T) {
	windows := SliceFreeTime([]interval.Interval{iv(9, 0, 10, 10), iv(10, 0, 10, 20)}, 30*time.Minute)
	assert.Equal(t, []interval.Interval{iv(9, 0, 9, 30), iv(9, 30, 10, 0)}, windows)
}
