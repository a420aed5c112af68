package cancel_slot

import "github.com/m04kA/SMC-InterviewScheduler/internal/domain"

// Request запрос на отмену бронирования слота
type Request struct {
	TenantID string
	SlotID   string
	Reason   *string
}

// Response отмененный слот
type Response struct {
	SlotID      string
	InterviewID *string
	Status      domain.SlotStatus
}
