package bulk_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// validateRequest валидирует входные данные и возвращает режим
func validateRequest(req *Request, maxPanel int, now time.Time) (domain.SchedulingMode, error) {
	if req.Strategy != nil || req.ScheduledTime != nil {
		return "", ErrLegacyFields
	}
	if req.TenantID == "" {
		return "", fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	mode, err := domain.ParseSchedulingMode(req.Mode)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateIDs("candidateIds", req.CandidateIDs); err != nil {
		return "", err
	}
	if err := validateIDs("interviewerIds", req.InterviewerIDs); err != nil {
		return "", err
	}
	if len(req.InterviewerIDs) > maxPanel {
		return "", fmt.Errorf("%w: %d interviewers, max %d", ErrPanelTooLarge, len(req.InterviewerIDs), maxPanel)
	}

	if req.DurationMins < domain.MinDurationMins || req.DurationMins > domain.MaxDurationMins {
		return "", fmt.Errorf("%w: durationMins must be within [%d, %d]",
			ErrInvalidInput, domain.MinDurationMins, domain.MaxDurationMins)
	}
	if req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if req.StartTime.Before(now) {
		return "", fmt.Errorf("%w: startTime is in the past", ErrInvalidInput)
	}
	if req.Stage != nil && len(*req.Stage) > domain.MaxRuleNameLength {
		return "", fmt.Errorf("%w: stage longer than %d characters", ErrInvalidInput, domain.MaxRuleNameLength)
	}

	return mode, nil
}

func validateIDs(field string, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, field)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: %s contains an empty id", ErrInvalidInput, field)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s contains duplicate %s", ErrInvalidInput, field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
