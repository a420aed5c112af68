package get_team_availability

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
		return fmt.Errorf("%w: at least one userId is required", ErrInvalidInput)
	}
	if len(req.UserIDs) > maxPanel {
		return fmt.Errorf("%w: %d users, max %d", ErrPanelTooLarge, len(req.UserIDs), maxPanel)
	}
	seen := make(map[string]struct{}, len(req.UserIDs))
	for _, id := range req.UserIDs {
		if id == "" {
			return fmt.Errorf("%w: empty userId", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate userId %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.Start.IsZero() || req.End.IsZero() || !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if req.End.Sub(req.Start) > domain.MaxQueryRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, domain.MaxQueryRangeDays)
	}

	if d := req.SlotDurationMins; d != nil && (*d < domain.MinDurationMins || *d > domain.MaxDurationMins) {
		return fmt.Errorf("%w: slotDurationMins must be within %d..%d", ErrInvalidInput, domain.MinDurationMins, domain.MaxDurationMins)
	}

	return nil
}
