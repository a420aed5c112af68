package cancel_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

type store struct {
	slots      map[string]domain.InterviewSlot
	interviews map[string]domain.InterviewStatus
	blocks     map[string][]string // interviewID -> userIDs
}

func (s *store) GetByID(_ context.Context, _, id string) (*domain.InterviewSlot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (s *store) UpdateStatus(_ context.Context, _, id string, from, to domain.SlotStatus) error {
	slot := s.slots[id]
	if slot.Status != from {
		return slotRepo.ErrStatusConflict
	}
	slot.Status = to
	s.slots[id] = slot
	return nil
}

type interviews struct{ s *store }

func (i interviews) UpdateStatus(_ context.Context, _, id string, status domain.InterviewStatus) error {
	i.s.interviews[id] = status
	return nil
}

func (s *store) DeleteBySource(_ context.Context, _ string, _ domain.BusyBlockSource, sourceID string) ([]string, error) {
	users := s.blocks[sourceID]
	delete(s.blocks, sourceID)
	return users, nil
}

type recordingCache struct{ users []string }

func (c *recordingCache) Invalidate(_ context.Context, _ string, userIDs ...string) error {
	c.users = append(c.users, userIDs...)
	return nil
}

type recordingPublisher struct{ events []events.SlotEvent }

func (p *recordingPublisher) Publish(_ context.Context, e events.SlotEvent) error {
	p.events = append(p.events, e)
	return nil
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newStore() *store {
	start := time.Date(2025, 10, 16, 10, 0, 0, 0, time.UTC)
	return &store{
		slots: map[string]domain.InterviewSlot{
			"booked": {
				ID: "booked", TenantID: "t1", Status: domain.SlotStatusBooked, InterviewID: ptr.Ptr("iv-1"),
				StartAt: start, EndAt: start.Add(time.Hour),
				Participants: domain.Participants{
					{Type: domain.ParticipantUser, ID: "u1"},
					{Type: domain.ParticipantCandidate, ID: "c1"},
				},
			},
			"available": {ID: "available", TenantID: "t1", Status: domain.SlotStatusAvailable, StartAt: start, EndAt: start.Add(time.Hour)},
		},
		interviews: map[string]domain.InterviewStatus{"iv-1": domain.InterviewStatusScheduled},
		blocks:     map[string][]string{"iv-1": {"u1"}},
	}
}

func TestExecute_CancelsBookedSlot(t *testing.T) {
	s := newStore()
	cache := &recordingCache{}
	pub := &recordingPublisher{}
	uc := NewUseCase(s, interviews{s}, s, cache, pub, passThroughTx{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{TenantID: "t1", SlotID: "booked", Reason: ptr.Ptr("candidate withdrew")})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotStatusCancelled, resp.Status)
	assert.Equal(t, domain.SlotStatusCancelled, s.slots["booked"].Status)
	assert.Equal(t, domain.InterviewStatusCancelled, s.interviews["iv-1"])
	assert.Empty(t, s.blocks)
	assert.Equal(t, []string{"u1"}, cache.users)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeSlotCancelled, pub.events[0].Type)
	assert.Equal(t, "candidate withdrew", ptr.Value(pub.events[0].Reason))
	assert.Equal(t, "c1", ptr.Value(pub.events[0].CandidateID))
}

func TestExecute_OnlyBookedSlotsCanBeCancelled(t *testing.T) {
	s := newStore()
	uc := NewUseCase(s, interviews{s}, s, &recordingCache{}, &recordingPublisher{}, passThroughTx{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{TenantID: "t1", SlotID: "available"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = uc.Execute(context.Background(), &Request{TenantID: "t1", SlotID: "missing"})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = uc.Execute(context.Background(), &Request{TenantID: "t1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
