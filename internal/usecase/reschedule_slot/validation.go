package reschedule_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.TenantID == "" || req.SlotID == "" {
		return fmt.Errorf("%w: tenantID and slotId are required", ErrInvalidInput)
	}

	if req.NewStart.IsZero() || req.NewEnd.IsZero() || !req.NewStart.Before(req.NewEnd) {
		return fmt.Errorf("%w: newStartAt must be before newEndAt", ErrInvalidInput)
	}

	d := req.NewEnd.Sub(req.NewStart)
	if d < domain.MinDurationMins*time.Minute || d > domain.MaxDurationMins*time.Minute {
		return fmt.Errorf("%w: duration must be within %d..%d minutes", ErrInvalidInput, domain.MinDurationMins, domain.MaxDurationMins)
	}

	// Перенос в прошлое запрещен
	if !req.NewStart.After(now) {
		return fmt.Errorf("%w: newStartAt is in the past", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
