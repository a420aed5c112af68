package check_conflicts

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxPanel int) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if len(req.UserIDs) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if len(req.UserIDs) > maxPanel {
		return fmt.Errorf("%w: %d participants, max %d", ErrPanelTooLarge, len(req.UserIDs), maxPanel)
	}
	for _, id := range req.UserIDs {
		if id == "" {
			return fmt.Errorf("%w: empty userId", ErrInvalidInput)
		}
	}
	if req.Start.IsZero() || req.End.IsZero() || !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if req.End.Sub(req.Start) > domain.MaxDurationMins*time.Minute {
		return fmt.Errorf("%w: proposed time longer than %d minutes", ErrInvalidInput, domain.MaxDurationMins)
	}
	return nil
}
