package reschedule_slot

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	rescheduleSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/reschedule_slot"
)

// RescheduleSlotRequest HTTP request model
type RescheduleSlotRequest struct {
	NewStart string  `json:"newStart"`
	NewEnd   string  `json:"newEnd"`
	Reason   *string `json:"reason,omitempty"`
}

type ConflictResponse struct {
	UserID   string `json:"userId"`
	StartAt  string `json:"startAt"`
	EndAt    string `json:"endAt"`
	Source   string `json:"source"`
	SourceID string `json:"sourceId,omitempty"`
	Label    string `json:"label,omitempty"`
}

// RescheduleSlotResponse HTTP response model
type RescheduleSlotResponse struct {
	SlotID        string             `json:"slotId"`
	InterviewID   *string            `json:"interviewId,omitempty"`
	Status        string             `json:"status"`
	StartAt       string             `json:"startAt"`
	EndAt         string             `json:"endAt"`
	PreviousStart string             `json:"previousStart"`
	PreviousEnd   string             `json:"previousEnd"`
	Timezone      string             `json:"timezone"`
	HasConflicts  bool               `json:"hasConflicts"`
	Conflicts     []ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleSlotRequest) ToUseCaseRequest(tenantID, slotID string) (*rescheduleSlot.Request, error) {
	newStart, err := handlers.ParseTime("newStart", r.NewStart)
	if err != nil {
		return nil, err
	}
	newEnd, err := handlers.ParseTime("newEnd", r.NewEnd)
	if err != nil {
		return nil, err
	}

	return &rescheduleSlot.Request{
		TenantID: tenantID,
		SlotID:   slotID,
		NewStart: newStart,
		NewEnd:   newEnd,
		Reason:   r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleSlot.Response) *RescheduleSlotResponse {
	out := &RescheduleSlotResponse{
		SlotID:        resp.SlotID,
		InterviewID:   resp.InterviewID,
		Status:        string(resp.Status),
		StartAt:       handlers.FormatTime(resp.StartAt),
		EndAt:         handlers.FormatTime(resp.EndAt),
		PreviousStart: handlers.FormatTime(resp.PreviousStart),
		PreviousEnd:   handlers.FormatTime(resp.PreviousEnd),
		Timezone:      resp.Timezone,
		HasConflicts:  resp.HasConflicts,
		Conflicts:     make([]ConflictResponse, 0, len(resp.Conflicts)),
	}
	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			UserID:   c.UserID,
			StartAt:  handlers.FormatTime(c.StartAt),
			EndAt:    handlers.FormatTime(c.EndAt),
			Source:   c.Source,
			SourceID: c.SourceID,
			Label:    c.Label,
		})
	}
	return out
}
