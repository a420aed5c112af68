package generate_slots

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	generateSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	InterviewerIDs []string `json:"interviewerIds"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	DurationMins   *int     `json:"durationMins,omitempty"`
	RuleID         *string  `json:"ruleId,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`
}

type SlotResponse struct {
	ID           string                   `json:"id"`
	StartAt      string                   `json:"startAt"`
	EndAt        string                   `json:"endAt"`
	Timezone     string                   `json:"timezone"`
	Status       string                   `json:"status"`
	Participants []domain.SlotParticipant `json:"participants"`
}

type WarningResponse struct {
	UserID  string `json:"userId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	RuleID       *string           `json:"ruleId,omitempty"`
	RuleName     string            `json:"ruleName"`
	DurationMins int               `json:"durationMins"`
	Total        int               `json:"total"`
	Slots        []SlotResponse    `json:"slots"`
	Warnings     []WarningResponse `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(tenantID string, organizerID *string) (*generateSlots.Request, error) {
	start, err := handlers.ParseTime("start", r.Start)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime("end", r.End)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		TenantID:     tenantID,
		OrganizerID:  organizerID,
		UserIDs:      r.InterviewerIDs,
		Start:        start,
		End:          end,
		DurationMins: r.DurationMins,
		RuleID:       r.RuleID,
		Timezone:     r.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	out := &GenerateSlotsResponse{
		RuleID:       resp.RuleID,
		RuleName:     resp.RuleName,
		DurationMins: resp.DurationMins,
		Total:        len(resp.Slots),
		Slots:        make([]SlotResponse, 0, len(resp.Slots)),
		Warnings:     make([]WarningResponse, 0, len(resp.Warnings)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:           s.ID,
			StartAt:      handlers.FormatTime(s.StartAt),
			EndAt:        handlers.FormatTime(s.EndAt),
			Timezone:     s.Timezone,
			Status:       string(s.Status),
			Participants: s.Participants,
		})
	}
	for _, w := range resp.Warnings {
		out.Warnings = append(out.Warnings, WarningResponse{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}
	return out
}
