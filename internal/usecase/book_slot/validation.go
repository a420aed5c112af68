package book_slot

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.SlotID == "" {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	if req.Candidate.ID == "" {
		return fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}

	if req.Candidate.Email != nil {
		if _, err := mail.ParseAddress(*req.Candidate.Email); err != nil {
			return fmt.Errorf("%w: candidate email: %v", ErrInvalidInput, err)
		}
	}

	if n := req.Metadata.Notes; n != nil && len(*n) > domain.MaxReasonLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateSlotState проверяет, что слот можно забронировать
func validateSlotState(slot *domain.InterviewSlot, now time.Time) error {
	switch slot.Status {
	case domain.SlotStatusAvailable:
	case domain.SlotStatusBooked:
		return ErrSlotAlreadyBooked
	default:
		return fmt.Errorf("%w: slot is %s", ErrSlotNotAvailable, slot.Status)
	}

	if !slot.StartAt.After(now) {
		return fmt.Errorf("%w: slot started at %s", ErrSlotNotAvailable, slot.StartAt.UTC().Format(time.RFC3339))
	}

	return nil
}
