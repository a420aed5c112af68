package cancel_slot

import (
	cancelSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/cancel_slot"
)

// CancelSlotRequest HTTP request model. Тело необязательно
type CancelSlotRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelSlotResponse HTTP response model
type CancelSlotResponse struct {
	SlotID      string  `json:"slotId"`
	InterviewID *string `json:"interviewId,omitempty"`
	Status      string  `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelSlotRequest) ToUseCaseRequest(tenantID, slotID string) *cancelSlot.Request {
	return &cancelSlot.Request{
		TenantID: tenantID,
		SlotID:   slotID,
		Reason:   r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelSlot.Response) *CancelSlotResponse {
	return &CancelSlotResponse{
		SlotID:      resp.SlotID,
		InterviewID: resp.InterviewID,
		Status:      string(resp.Status),
	}
}
