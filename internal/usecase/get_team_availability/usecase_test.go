package get_team_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

// staticBusy отдает заранее заданную занятость
type staticBusy map[string][]interval.Interval

func (s staticBusy) Busy(_ context.Context, _ string, userID string, rng interval.Interval) (*scheduling.BusySet, error) {
	return &scheduling.BusySet{UserID: userID, Range: rng, Intervals: interval.Clip(s[userID], rng)}, nil
}

func (s staticBusy) BusyForPanel(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval) ([]*scheduling.BusySet, error) {
	sets := make([]*scheduling.BusySet, 0, len(userIDs))
	for _, id := range userIDs {
		set, _ := s.Busy(ctx, tenantID, id, rng)
		sets = append(sets, set)
	}
	return sets, nil
}

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
}

func TestExecute_SlicesCombinedTime(t *testing.T) {
	busy := staticBusy{
		"u1": {{Start: at(0, 0), End: at(9, 0)}, {Start: at(12, 0), End: at(24, 0)}},
		"u2": {{Start: at(0, 0), End: at(10, 0)}, {Start: at(17, 0), End: at(24, 0)}},
	}
	uc := NewUseCase(scheduling.NewResolver(busy), 5, "UTC", logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:         "t1",
		UserIDs:          []string{"u1", "u2"},
		Start:            at(0, 0),
		End:              at(24, 0),
		SlotDurationMins: ptr.Ptr(45),
	})
	require.NoError(t, err)

	require.Len(t, resp.Combined, 1)
	assert.True(t, resp.Combined[0].Start.Equal(at(10, 0)))
	assert.True(t, resp.Combined[0].End.Equal(at(12, 0)))

	// 10:00-10:45, 10:45-11:30, хвост 30 минут отброшен
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[1].End.Equal(at(11, 30)))
	assert.Len(t, resp.Members, 2)
}

func TestExecute_NoSlotDurationReturnsNoSlots(t *testing.T) {
	uc := NewUseCase(scheduling.NewResolver(staticBusy{}), 5, "UTC", logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: "t1",
		UserIDs:  []string{"u1"},
		Start:    at(9, 0),
		End:      at(10, 0),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Combined, 1)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(scheduling.NewResolver(staticBusy{}), 2, "UTC", logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		TenantID: "t1", UserIDs: []string{"a", "b", "c"}, Start: at(9, 0), End: at(10, 0),
	})
	assert.ErrorIs(t, err, ErrPanelTooLarge)

	_, err = uc.Execute(context.Background(), &Request{
		TenantID: "t1", UserIDs: []string{"a"}, Start: at(9, 0), End: at(10, 0), SlotDurationMins: ptr.Ptr(500),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
