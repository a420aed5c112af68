package bulk_schedule

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	bulkSchedule "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/bulk_schedule"
)

// BulkScheduleRequest HTTP request model.
// strategy и scheduledTime принимаются только для явного отказа
type BulkScheduleRequest struct {
	CandidateIDs   []string `json:"candidateIds"`
	InterviewerIDs []string `json:"interviewerIds"`
	DurationMins   int      `json:"durationMins"`
	Mode           string   `json:"mode"` // SEQUENTIAL | GROUP
	StartTime      string   `json:"startTime"`
	Stage          *string  `json:"stage,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`
	Strategy       *string  `json:"strategy,omitempty"`
	ScheduledTime  *string  `json:"scheduledTime,omitempty"`
}

type CreatedResponse struct {
	CandidateID string `json:"candidateId"`
	InterviewID string `json:"interviewId"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
}

type SkippedResponse struct {
	CandidateID string `json:"candidateId"`
	Reason      string `json:"reason"`
}

// BulkScheduleResponse HTTP response model
type BulkScheduleResponse struct {
	Total             int               `json:"total"`
	Scheduled         int               `json:"scheduled"`
	Skipped           int               `json:"skipped"`
	BulkBatchID       string            `json:"bulkBatchId,omitempty"`
	Mode              string            `json:"mode"`
	Created           []CreatedResponse `json:"created"`
	SkippedCandidates []SkippedResponse `json:"skippedCandidates"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустой startTime остается нулевым, его отклонит валидация use case
func (r *BulkScheduleRequest) ToUseCaseRequest(tenantID string) (*bulkSchedule.Request, error) {
	var startTime time.Time
	if r.StartTime != "" {
		t, err := handlers.ParseTime("startTime", r.StartTime)
		if err != nil {
			return nil, err
		}
		startTime = t
	}

	return &bulkSchedule.Request{
		TenantID:       tenantID,
		CandidateIDs:   r.CandidateIDs,
		InterviewerIDs: r.InterviewerIDs,
		DurationMins:   r.DurationMins,
		Mode:           r.Mode,
		StartTime:      startTime,
		Stage:          r.Stage,
		Timezone:       r.Timezone,
		Strategy:       r.Strategy,
		ScheduledTime:  r.ScheduledTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bulkSchedule.Response) *BulkScheduleResponse {
	out := &BulkScheduleResponse{
		Total:             resp.Total,
		Scheduled:         resp.Scheduled,
		Skipped:           resp.Skipped,
		BulkBatchID:       resp.BulkBatchID,
		Mode:              string(resp.Mode),
		Created:           make([]CreatedResponse, 0, len(resp.Created)),
		SkippedCandidates: make([]SkippedResponse, 0, len(resp.SkippedCandidates)),
	}
	for _, c := range resp.Created {
		out.Created = append(out.Created, CreatedResponse{
			CandidateID: c.CandidateID,
			InterviewID: c.InterviewID,
			StartAt:     handlers.FormatTime(c.StartAt),
			EndAt:       handlers.FormatTime(c.EndAt),
		})
	}
	for _, s := range resp.SkippedCandidates {
		out.SkippedCandidates = append(out.SkippedCandidates, SkippedResponse{CandidateID: s.CandidateID, Reason: s.Reason})
	}
	return out
}
