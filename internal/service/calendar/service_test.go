package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	busyBlockRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/busyblock"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar/models"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/ptr"
)

type memoryHours struct {
	records []*domain.WorkingHours
}

func (m *memoryHours) Create(_ context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	wh.ID = fmt.Sprintf("wh-%d", len(m.records)+1)
	wh.CreatedAt = time.Date(2025, 10, 1, 0, 0, len(m.records), 0, time.UTC)
	m.records = append(m.records, wh)
	return wh, nil
}

func (m *memoryHours) ListByUser(_ context.Context, tenantID, userID string) ([]*domain.WorkingHours, error) {
	var out []*domain.WorkingHours
	for i := len(m.records) - 1; i >= 0; i-- {
		if r := m.records[i]; r.TenantID == tenantID && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memoryBlocks struct {
	blocks map[string]*domain.BusyBlock
	seq    int
}

func (m *memoryBlocks) Create(_ context.Context, b *domain.BusyBlock) (*domain.BusyBlock, error) {
	m.seq++
	b.ID = fmt.Sprintf("bb-%d", m.seq)
	m.blocks[b.ID] = b
	return b, nil
}

func (m *memoryBlocks) GetByID(_ context.Context, tenantID, id string) (*domain.BusyBlock, error) {
	b, ok := m.blocks[id]
	if !ok || b.TenantID != tenantID {
		return nil, busyBlockRepo.ErrBusyBlockNotFound
	}
	return b, nil
}

func (m *memoryBlocks) List(_ context.Context, f domain.BusyBlockFilter) ([]*domain.BusyBlock, error) {
	var out []*domain.BusyBlock
	for _, b := range m.blocks {
		if b.TenantID != f.TenantID || b.UserID != f.UserID {
			continue
		}
		if f.Source != nil && b.Source != *f.Source {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryBlocks) Delete(_ context.Context, tenantID, id string) error {
	if _, err := m.GetByID(context.Background(), tenantID, id); err != nil {
		return err
	}
	delete(m.blocks, id)
	return nil
}

type recordingCache struct {
	invalidated []string
	err         error
}

func (c *recordingCache) Invalidate(_ context.Context, _ string, userIDs ...string) error {
	c.invalidated = append(c.invalidated, userIDs...)
	return c.err
}

func newService() (*Service, *memoryHours, *memoryBlocks, *recordingCache) {
	hours := &memoryHours{}
	blocks := &memoryBlocks{blocks: make(map[string]*domain.BusyBlock)}
	cache := &recordingCache{}
	return NewService(hours, blocks, cache, logger.NewNop()), hours, blocks, cache
}

func TestService_SetWorkingHoursSupersedes(t *testing.T) {
	svc, _, _, cache := newService()
	ctx := context.Background()

	_, err := svc.SetWorkingHours(ctx, &models.SetWorkingHoursRequest{
		TenantID: "t1", UserID: "u1", Timezone: "UTC",
		Weekly: []models.WeeklyPattern{{DayOfWeek: 1, Start: "09:00", End: "17:00"}},
	})
	require.NoError(t, err)

	resp, err := svc.SetWorkingHours(ctx, &models.SetWorkingHoursRequest{
		TenantID: "t1", UserID: "u1", Timezone: "Asia/Kolkata",
		Weekly: []models.WeeklyPattern{
			{DayOfWeek: 2, Start: "13:00", End: "17:00"},
			{DayOfWeek: 2, Start: "09:00", End: "12:00"},
		},
		EffectiveFrom: ptr.Ptr("2025-11-01"),
		EffectiveTo:   ptr.Ptr("2025-11-30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-30", ptr.Value(resp.EffectiveTo))

	list, err := svc.GetWorkingHours(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", list.Current.Timezone)
	assert.Len(t, list.Current.Weekly, 2)
	require.Len(t, list.History, 1)
	assert.Equal(t, "UTC", list.History[0].Timezone)

	assert.Equal(t, []string{"u1", "u1"}, cache.invalidated)
}

func TestService_SetWorkingHoursValidation(t *testing.T) {
	svc, hours, _, _ := newService()

	tests := []struct {
		name string
		req  models.SetWorkingHoursRequest
	}{
		{"unknown timezone", models.SetWorkingHoursRequest{UserID: "u1", Timezone: "Moon/Base"}},
		{"inverted window", models.SetWorkingHoursRequest{UserID: "u1", Timezone: "UTC",
			Weekly: []models.WeeklyPattern{{DayOfWeek: 1, Start: "17:00", End: "09:00"}}}},
		{"bad day", models.SetWorkingHoursRequest{UserID: "u1", Timezone: "UTC",
			Weekly: []models.WeeklyPattern{{DayOfWeek: 7, Start: "09:00", End: "17:00"}}}},
		{"bad date", models.SetWorkingHoursRequest{UserID: "u1", Timezone: "UTC", EffectiveFrom: ptr.Ptr("01.11.2025")}},
		{"inverted dates", models.SetWorkingHoursRequest{UserID: "u1", Timezone: "UTC",
			EffectiveFrom: ptr.Ptr("2025-11-30"), EffectiveTo: ptr.Ptr("2025-11-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.TenantID = "t1"
			_, err := svc.SetWorkingHours(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, hours.records)
}

func TestService_GetWorkingHoursMissing(t *testing.T) {
	svc, _, _, _ := newService()
	_, err := svc.GetWorkingHours(context.Background(), "t1", "nobody")
	assert.ErrorIs(t, err, ErrWorkingHoursNotFound)
}

func TestService_BusyBlockLifecycle(t *testing.T) {
	svc, _, blocks, cache := newService()
	ctx := context.Background()
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	created, err := svc.CreateBusyBlock(ctx, &models.CreateBusyBlockRequest{
		TenantID: "t1", UserID: "u1", StartAt: start, EndAt: start.Add(time.Hour), Reason: ptr.Ptr("Dentist"),
	})
	require.NoError(t, err)
	assert.Equal(t, "manual", created.Source)

	_, err = svc.CreateBusyBlock(ctx, &models.CreateBusyBlockRequest{
		TenantID: "t1", UserID: "u1", StartAt: start, EndAt: start.Add(time.Hour),
		Source: "calendar_sync", SourceID: ptr.Ptr("evt-1"),
	})
	require.NoError(t, err)

	list, err := svc.ListBusyBlocks(ctx, &models.ListBusyBlocksRequest{TenantID: "t1", UserID: "u1", Source: ptr.Ptr("manual")})
	require.NoError(t, err)
	require.Len(t, list.Blocks, 1)
	assert.Equal(t, created.ID, list.Blocks[0].ID)

	require.NoError(t, svc.DeleteBusyBlock(ctx, "t1", created.ID))
	assert.ErrorIs(t, svc.DeleteBusyBlock(ctx, "t1", created.ID), ErrBusyBlockNotFound)
	assert.Len(t, blocks.blocks, 1)
	assert.Equal(t, []string{"u1", "u1", "u1"}, cache.invalidated)
}

func TestService_InterviewBlocksAreManaged(t *testing.T) {
	svc, _, blocks, _ := newService()
	ctx := context.Background()
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateBusyBlock(ctx, &models.CreateBusyBlockRequest{
		TenantID: "t1", UserID: "u1", StartAt: start, EndAt: start.Add(time.Hour), Source: "interview",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	blocks.blocks["bb-iv"] = &domain.BusyBlock{ID: "bb-iv", TenantID: "t1", UserID: "u1", Source: domain.BusySourceInterview}
	assert.ErrorIs(t, svc.DeleteBusyBlock(ctx, "t1", "bb-iv"), ErrManagedBlock)
}

func TestService_CacheFailureDoesNotFailWrite(t *testing.T) {
	svc, _, _, cache := newService()
	cache.err = errors.New("redis down")
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateBusyBlock(context.Background(), &models.CreateBusyBlockRequest{
		TenantID: "t1", UserID: "u1", StartAt: start, EndAt: start.Add(30 * time.Minute),
	})
	assert.NoError(t, err)
}

func TestService_CreateBusyBlockValidation(t *testing.T) {
	svc, _, _, _ := newService()
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  models.CreateBusyBlockRequest
	}{
		{"inverted", models.CreateBusyBlockRequest{UserID: "u1", StartAt: start, EndAt: start}},
		{"unknown source", models.CreateBusyBlockRequest{UserID: "u1", StartAt: start, EndAt: start.Add(time.Hour), Source: "ical"}},
		{"sync without id", models.CreateBusyBlockRequest{UserID: "u1", StartAt: start, EndAt: start.Add(time.Hour), Source: "calendar_sync"}},
		{"too long", models.CreateBusyBlockRequest{UserID: "u1", StartAt: start, EndAt: start.Add(63 * 24 * time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.TenantID = "t1"
			_, err := svc.CreateBusyBlock(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
