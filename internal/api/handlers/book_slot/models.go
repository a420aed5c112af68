package book_slot

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	bookSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/book_slot"
)

type CandidateRequest struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	Candidate CandidateRequest    `json:"candidate"`
	Stage     *string             `json:"stage,omitempty"`
	Metadata  domain.SlotMetadata `json:"metadata"`
}

type ConflictResponse struct {
	UserID   string `json:"userId"`
	StartAt  string `json:"startAt"`
	EndAt    string `json:"endAt"`
	Source   string `json:"source"`
	SourceID string `json:"sourceId,omitempty"`
	Label    string `json:"label,omitempty"`
}

// BookSlotResponse HTTP response model
type BookSlotResponse struct {
	SlotID       string                   `json:"slotId"`
	InterviewID  string                   `json:"interviewId"`
	Status       string                   `json:"status"`
	StartAt      string                   `json:"startAt"`
	EndAt        string                   `json:"endAt"`
	Timezone     string                   `json:"timezone"`
	Participants []domain.SlotParticipant `json:"participants"`
	Metadata     domain.SlotMetadata      `json:"metadata"`
	HasConflicts bool                     `json:"hasConflicts"`
	Conflicts    []ConflictResponse       `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(tenantID, slotID string, bookedBy *string) *bookSlot.Request {
	return &bookSlot.Request{
		TenantID: tenantID,
		SlotID:   slotID,
		Candidate: bookSlot.Candidate{
			ID:    r.Candidate.ID,
			Name:  r.Candidate.Name,
			Email: r.Candidate.Email,
			Phone: r.Candidate.Phone,
		},
		Stage:    r.Stage,
		BookedBy: bookedBy,
		Metadata: r.Metadata,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookSlotResponse {
	out := &BookSlotResponse{
		SlotID:       resp.SlotID,
		InterviewID:  resp.InterviewID,
		Status:       string(resp.Status),
		StartAt:      handlers.FormatTime(resp.StartAt),
		EndAt:        handlers.FormatTime(resp.EndAt),
		Timezone:     resp.Timezone,
		Participants: resp.Participants,
		Metadata:     resp.Metadata,
		HasConflicts: resp.HasConflicts,
		Conflicts:    make([]ConflictResponse, 0, len(resp.Conflicts)),
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
