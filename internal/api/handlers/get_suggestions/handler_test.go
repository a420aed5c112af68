package get_suggestions

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

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	getSuggestions "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_suggestions"
)

type stubUseCase struct {
	got  *getSuggestions.Request
	resp *getSuggestions.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getSuggestions.Request) (*getSuggestions.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/suggestions", strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "t1", ""))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_PreferencesWireFormat(t *testing.T) {
	start := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getSuggestions.Response{
		Timezone: "UTC",
		Suggestions: []getSuggestions.Suggestion{{
			StartAt:          start,
			EndAt:            start.Add(time.Hour),
			Score:            85,
			Reasons:          []string{"matches preferred time of day (morning)"},
			UserAvailability: map[string]bool{"u1": true},
		}},
		TotalAvailableSlots: 7,
		QueryStart:          start,
		QueryEnd:            start.Add(8 * time.Hour),
		ProcessingTime:      12 * time.Millisecond,
	}}

	rec := serve(uc, `{
		"userIds": ["u1"],
		"start": "2025-10-15T09:00:00Z",
		"end": "2025-10-15T17:00:00Z",
		"durationMins": 60,
		"preferences": {"preferredTimeOfDay": "morning", "preferredDays": [1, 3], "avoidBackToBack": true}
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, uc.got)
	assert.Equal(t, "morning", uc.got.Preferences.TimeOfDay)
	assert.Equal(t, []int{1, 3}, uc.got.Preferences.PreferredDays)
	assert.True(t, uc.got.Preferences.AvoidBackToBack)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.EqualValues(t, 7, body["totalAvailableSlots"])
	assert.EqualValues(t, 12, body["processingTimeMs"])
	assert.Equal(t, map[string]interface{}{
		"start": "2025-10-15T09:00:00Z",
		"end":   "2025-10-15T17:00:00Z",
	}, body["queryRange"])
	require.Len(t, body["suggestions"], 1)
}

func TestHandle_RejectsUnknownPreferenceFields(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, `{
		"userIds": ["u1"],
		"start": "2025-10-15T09:00:00Z",
		"end": "2025-10-15T17:00:00Z",
		"durationMins": 60,
		"preferences": {"timeOfDay": "morning"}
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_RejectsWeekdayNames(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, `{
		"userIds": ["u1"],
		"start": "2025-10-15T09:00:00Z",
		"end": "2025-10-15T17:00:00Z",
		"durationMins": 60,
		"preferences": {"preferredDays": ["Wednesday"]}
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}
