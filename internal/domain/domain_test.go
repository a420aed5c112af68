package domain

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to SlotStatus
		allowed  bool
	}{
		{SlotStatusAvailable, SlotStatusBooked, true},
		{SlotStatusAvailable, SlotStatusExpired, true},
		{SlotStatusBooked, SlotStatusCancelled, true},
		{SlotStatusBooked, SlotStatusAvailable, false},
		{SlotStatusAvailable, SlotStatusCancelled, false},
		{SlotStatusCancelled, SlotStatusAvailable, false},
		{SlotStatusExpired, SlotStatusBooked, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			slot := &InterviewSlot{Status: tt.from}
			err := slot.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, slot.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, slot.Status)
			}
		})
	}
}

func TestTimeOfDay_Matches(t *testing.T) {
	assert.True(t, TimeOfDayMorning.Matches(11))
	assert.False(t, TimeOfDayMorning.Matches(12))
	assert.True(t, TimeOfDayAfternoon.Matches(12))
	assert.True(t, TimeOfDayAfternoon.Matches(16))
	assert.False(t, TimeOfDayAfternoon.Matches(17))
	assert.True(t, TimeOfDayEvening.Matches(17))
	assert.False(t, TimeOfDayAny.Matches(10))

	_, err := ParseTimeOfDay("night")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestParseSchedulingMode(t *testing.T) {
	mode, err := ParseSchedulingMode("group")
	require.NoError(t, err)
	assert.Equal(t, SchedulingModeGroup, mode)

	_, err = ParseSchedulingMode("")
	assert.ErrorIs(t, err, ErrInvalidSchedulingMode)

	_, err = ParseSchedulingMode("AUTO")
	assert.ErrorIs(t, err, ErrInvalidSchedulingMode)
}

func TestWorkingHours_Validate(t *testing.T) {
	wh := &WorkingHours{
		Timezone: "Europe/Berlin",
		Weekly: WeeklyPatterns{
			{DayOfWeek: time.Monday, Start: "09:00", End: "17:00"},
			{DayOfWeek: time.Saturday, Start: "20:00", End: "24:00"},
		},
	}
	require.NoError(t, wh.Validate())

	wh.Weekly = append(wh.Weekly, WeeklyPattern{DayOfWeek: time.Tuesday, Start: "17:00", End: "09:00"})
	assert.ErrorIs(t, wh.Validate(), ErrInvalidWorkingHours)

	bad := &WorkingHours{Timezone: "Mars/Olympus"}
	assert.ErrorIs(t, bad.Validate(), ErrUnknownTimezone)
}

func TestRule_BuffersDisabledByOverlap(t *testing.T) {
	rule := &SchedulingRule{BufferBeforeMins: 10, BufferAfterMins: 5}
	before, after := rule.Buffers()
	assert.Equal(t, 10*time.Minute, before)
	assert.Equal(t, 5*time.Minute, after)

	rule.AllowOverlapping = true
	before, after = rule.Buffers()
	assert.Zero(t, before)
	assert.Zero(t, after)
}

func TestParticipants_JSONRoundTripThroughScanner(t *testing.T) {
	email := "lead@example.com"
	in := Participants{
		{Type: ParticipantUser, ID: "u1", Email: &email},
		{Type: ParticipantCandidate, ID: "c1"},
	}

	raw, err := in.Value()
	require.NoError(t, err)

	var out Participants
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)
	assert.Equal(t, []string{"u1"}, out.UserIDs())

	candidate, ok := out.Candidate()
	require.True(t, ok)
	assert.Equal(t, "c1", candidate.ID)
}

func TestInterviewBlocks(t *testing.T) {
	stage := "Technical"
	iv := &Interview{
		ID:             "iv1",
		TenantID:       "t1",
		InterviewerIDs: []string{"u1", "u2"},
		StartAt:        time.Date(2025, 10, 15, 12, 0, 0, 0, time.FixedZone("X", 3600)),
		EndAt:          time.Date(2025, 10, 15, 13, 0, 0, 0, time.FixedZone("X", 3600)),
		Stage:          &stage,
	}

	blocks := InterviewBlocks(iv)
	require.Len(t, blocks, 2)
	for i, b := range blocks {
		assert.Equal(t, iv.InterviewerIDs[i], b.UserID)
		assert.Equal(t, BusySourceInterview, b.Source)
		assert.Equal(t, "iv1", *b.SourceID)
		assert.Equal(t, "Interview: Technical", *b.Reason)
		assert.Equal(t, time.UTC, b.StartAt.Location())
		assert.Equal(t, 11, b.StartAt.Hour())
	}
}

func TestWeekdayFromIndex(t *testing.T) {
	d, err := WeekdayFromIndex(0)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	d, err = WeekdayFromIndex(3)
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)

	_, err = WeekdayFromIndex(7)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	_, err = WeekdayFromIndex(-1)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
