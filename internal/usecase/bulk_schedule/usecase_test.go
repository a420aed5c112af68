package bulk_schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type interviewStore struct {
	existing  map[string][]*domain.Interview
	created   []*domain.Interview
	createErr error
}

func (s *interviewStore) Create(_ context.Context, iv *domain.Interview) (*domain.Interview, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	iv.ID = fmt.Sprintf("iv-%d", len(s.created)+1)
	s.created = append(s.created, iv)
	return iv, nil
}

func (s *interviewStore) ListActiveByCandidate(_ context.Context, _, candidateID string) ([]*domain.Interview, error) {
	return s.existing[candidateID], nil
}

type blockStore struct{ blocks []*domain.BusyBlock }

func (s *blockStore) CreateBatch(_ context.Context, blocks []*domain.BusyBlock) error {
	s.blocks = append(s.blocks, blocks...)
	return nil
}

type staticBusy struct{ entries map[string][]scheduling.BusyEntry }

func (b *staticBusy) BusyForPanel(_ context.Context, _ string, userIDs []string, rng interval.Interval) ([]*scheduling.BusySet, error) {
	sets := make([]*scheduling.BusySet, 0, len(userIDs))
	for _, id := range userIDs {
		sets = append(sets, &scheduling.BusySet{UserID: id, Range: rng, Entries: b.entries[id]})
	}
	return sets, nil
}

type recordingCache struct{ invalidated []string }

func (c *recordingCache) Invalidate(_ context.Context, _ string, userIDs ...string) error {
	c.invalidated = append(c.invalidated, userIDs...)
	return nil
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type env struct {
	uc         *UseCase
	interviews *interviewStore
	blocks     *blockStore
	cache      *recordingCache
}

func newEnv(interviews *interviewStore, busy *staticBusy) *env {
	e := &env{interviews: interviews, blocks: &blockStore{}, cache: &recordingCache{}}
	e.uc = NewUseCase(interviews, e.blocks, busy, e.cache, passThroughTx{}, 5, "UTC", logger.NewNop())
	e.uc.timeProvider = fixedClock{now: at(0, 0).Add(-24 * time.Hour)}
	return e
}

func TestExecute_SequentialSkipsBusyCandidatesAndInterviewers(t *testing.T) {
	interviews := &interviewStore{existing: map[string][]*domain.Interview{
		"c2": {{ID: "old", CandidateID: "c2", StartAt: at(11, 30), EndAt: at(12, 30), Status: domain.InterviewStatusScheduled}},
	}}
	busy := &staticBusy{entries: map[string][]scheduling.BusyEntry{
		"u2": {{Interval: interval.Interval{Start: at(12, 30), End: at(13, 0)}, Source: scheduling.BusySourceManual, SourceID: "bb-1"}},
	}}
	e := newEnv(interviews, busy)

	resp, err := e.uc.Execute(context.Background(), &Request{
		TenantID:       "t1",
		CandidateIDs:   []string{"c1", "c2", "c3", "c4"},
		InterviewerIDs: []string{"u1", "u2"},
		DurationMins:   60,
		Mode:           "sequential",
		StartTime:      at(10, 0),
		Stage:          ptr.Ptr("Technical"),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.Scheduled)
	assert.Equal(t, 2, resp.Skipped)
	assert.Equal(t, domain.SchedulingModeSequential, resp.Mode)
	assert.NotEmpty(t, resp.BulkBatchID)

	require.Len(t, resp.Created, 2)
	assert.Equal(t, "c1", resp.Created[0].CandidateID)
	assert.True(t, resp.Created[0].StartAt.Equal(at(10, 0)))
	assert.Equal(t, "c4", resp.Created[1].CandidateID)
	assert.True(t, resp.Created[1].StartAt.Equal(at(13, 0)))

	assert.Equal(t, []Skipped{
		{CandidateID: "c2", Reason: reasonCandidateBusy},
		{CandidateID: "c3", Reason: "interviewer u2 has a conflict (manual)"},
	}, resp.SkippedCandidates)

	for _, iv := range interviews.created {
		assert.Equal(t, resp.BulkBatchID, ptr.Value(iv.BulkBatchID))
		assert.Equal(t, []string{"u1", "u2"}, iv.InterviewerIDs)
	}
	assert.Len(t, e.blocks.blocks, 4)
	assert.ElementsMatch(t, []string{"u1", "u2"}, e.cache.invalidated)
}

func TestExecute_GroupSharesStartTime(t *testing.T) {
	e := newEnv(&interviewStore{}, &staticBusy{})

	resp, err := e.uc.Execute(context.Background(), &Request{
		TenantID:       "t1",
		CandidateIDs:   []string{"c1", "c2", "c3"},
		InterviewerIDs: []string{"u1"},
		DurationMins:   45,
		Mode:           "GROUP",
		StartTime:      at(14, 0),
		Timezone:       "Europe/Berlin",
	})
	require.NoError(t, err)

	require.Len(t, resp.Created, 3)
	for _, c := range resp.Created {
		assert.True(t, c.StartAt.Equal(at(14, 0)))
		assert.True(t, c.EndAt.Equal(at(14, 45)))
		assert.Equal(t, "Europe/Berlin", c.StartAt.Location().String())
	}
	assert.Empty(t, resp.SkippedCandidates)
}

func TestExecute_AllSkippedLeavesCacheAlone(t *testing.T) {
	busy := &staticBusy{entries: map[string][]scheduling.BusyEntry{
		"u1": {{Interval: interval.Interval{Start: at(0, 0), End: at(23, 0)}, Source: scheduling.BusySourceUnknownAvailability}},
	}}
	e := newEnv(&interviewStore{}, busy)

	resp, err := e.uc.Execute(context.Background(), &Request{
		TenantID: "t1", CandidateIDs: []string{"c1"}, InterviewerIDs: []string{"u1"},
		DurationMins: 30, Mode: "GROUP", StartTime: at(10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Scheduled)
	assert.Equal(t, 1, resp.Skipped)
	assert.Empty(t, e.cache.invalidated)
}

func TestExecute_StoreFailure(t *testing.T) {
	e := newEnv(&interviewStore{createErr: errors.New("db down")}, &staticBusy{})

	_, err := e.uc.Execute(context.Background(), &Request{
		TenantID: "t1", CandidateIDs: []string{"c1"}, InterviewerIDs: []string{"u1"},
		DurationMins: 30, Mode: "GROUP", StartTime: at(10, 0),
	})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, e.cache.invalidated)
}

func TestExecute_Rejections(t *testing.T) {
	valid := func() *Request {
		return &Request{
			TenantID: "t1", CandidateIDs: []string{"c1"}, InterviewerIDs: []string{"u1"},
			DurationMins: 60, Mode: "SEQUENTIAL", StartTime: at(10, 0),
		}
	}

	tests := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"legacy strategy", func(r *Request) { r.Strategy = ptr.Ptr("AUTO") }, ErrLegacyFields},
		{"legacy scheduledTime", func(r *Request) { r.ScheduledTime = ptr.Ptr("2025-10-15T10:00:00Z") }, ErrLegacyFields},
		{"missing mode", func(r *Request) { r.Mode = "" }, ErrInvalidInput},
		{"unknown mode", func(r *Request) { r.Mode = "AUTO" }, ErrInvalidInput},
		{"no candidates", func(r *Request) { r.CandidateIDs = nil }, ErrInvalidInput},
		{"duplicate candidate", func(r *Request) { r.CandidateIDs = []string{"c1", "c1"} }, ErrInvalidInput},
		{"no interviewers", func(r *Request) { r.InterviewerIDs = nil }, ErrInvalidInput},
		{"panel too large", func(r *Request) { r.InterviewerIDs = []string{"a", "b", "c", "d", "e", "f"} }, ErrPanelTooLarge},
		{"short duration", func(r *Request) { r.DurationMins = 14 }, ErrInvalidInput},
		{"past start", func(r *Request) { r.StartTime = at(0, 0).Add(-48 * time.Hour) }, ErrInvalidInput},
		{"bad timezone", func(r *Request) { r.Timezone = "Nowhere/City" }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(&interviewStore{}, &staticBusy{})
			req := valid()
			tt.mutate(req)
			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, e.interviews.created)
		})
	}
}
