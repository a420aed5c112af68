package bulk_schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	bulkSchedule "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/bulk_schedule"
)

type stubUseCase struct {
	got  *bulkSchedule.Request
	resp *bulkSchedule.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *bulkSchedule.Request) (*bulkSchedule.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func post(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/interviews/bulk", strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "t1", ""))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_LegacyFieldsRejected(t *testing.T) {
	uc := &stubUseCase{err: bulkSchedule.ErrLegacyFields}
	rec := post(uc, `{"candidateIds":["c1"],"interviewerIds":["u1"],"durationMins":60,"strategy":"sequential","scheduledTime":"2025-10-15T10:00:00Z"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, uc.got)
	require.NotNil(t, uc.got.Strategy)
	assert.True(t, uc.got.StartTime.IsZero())

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, msgLegacyFields, body.Message)
}

func TestHandle_Scheduled(t *testing.T) {
	start := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &bulkSchedule.Response{
		Total:       2,
		Scheduled:   1,
		Skipped:     1,
		BulkBatchID: "batch-1",
		Mode:        domain.SchedulingModeSequential,
		Created: []bulkSchedule.Created{
			{CandidateID: "c1", InterviewID: "iv-1", StartAt: start, EndAt: start.Add(time.Hour)},
		},
		SkippedCandidates: []bulkSchedule.Skipped{{CandidateID: "c2", Reason: "candidate already has an interview at this time"}},
	}}

	rec := post(uc, `{"candidateIds":["c1","c2"],"interviewerIds":["u1"],"durationMins":60,"mode":"SEQUENTIAL","startTime":"2025-10-15T10:00:00Z"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, start, uc.got.StartTime)

	var body BulkScheduleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Scheduled)
	assert.Equal(t, "SEQUENTIAL", body.Mode)
	require.Len(t, body.Created, 1)
	assert.Equal(t, "2025-10-15T11:00:00Z", body.Created[0].EndAt)
	require.Len(t, body.SkippedCandidates, 1)
	assert.Equal(t, "c2", body.SkippedCandidates[0].CandidateID)
}

func TestHandle_BadStartTime(t *testing.T) {
	uc := &stubUseCase{}
	rec := post(uc, `{"candidateIds":["c1"],"interviewerIds":["u1"],"durationMins":60,"mode":"GROUP","startTime":"tomorrow"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
