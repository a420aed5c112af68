package get_suggestions

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// validateRequest валидирует входные данные и разбирает предпочтения
func validateRequest(req *Request, maxPanel int) (domain.SlotPreferences, error) {
	var prefs domain.SlotPreferences

	if req.TenantID == "" {
		return prefs, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if len(req.UserIDs) == 0 {
		return prefs, fmt.Errorf("%w: at least one userId is required", ErrInvalidInput)
	}
	if len(req.UserIDs) > maxPanel {
		return prefs, fmt.Errorf("%w: %d participants, max %d", ErrPanelTooLarge, len(req.UserIDs), maxPanel)
	}
	seen := make(map[string]struct{}, len(req.UserIDs))
	for _, id := range req.UserIDs {
		if id == "" {
			return prefs, fmt.Errorf("%w: empty userId", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return prefs, fmt.Errorf("%w: duplicate userId %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.Start.IsZero() || req.End.IsZero() || !req.Start.Before(req.End) {
		return prefs, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if req.End.Sub(req.Start) > domain.MaxQueryRangeDays*24*time.Hour {
		return prefs, fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, domain.MaxQueryRangeDays)
	}
	if req.DurationMins < domain.MinDurationMins || req.DurationMins > domain.MaxDurationMins {
		return prefs, fmt.Errorf("%w: durationMins must be within [%d, %d]",
			ErrInvalidInput, domain.MinDurationMins, domain.MaxDurationMins)
	}
	if req.MaxSuggestions != nil && (*req.MaxSuggestions < 1 || *req.MaxSuggestions > domain.MaxSuggestionsLimit) {
		return prefs, fmt.Errorf("%w: maxSuggestions must be within [1, %d]", ErrInvalidInput, domain.MaxSuggestionsLimit)
	}
	if req.CandidateID != nil && *req.CandidateID == "" {
		return prefs, fmt.Errorf("%w: candidateId must not be empty", ErrInvalidInput)
	}

	tod, err := domain.ParseTimeOfDay(req.Preferences.TimeOfDay)
	if err != nil {
		return prefs, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	prefs.PreferredTimeOfDay = tod

	for _, raw := range req.Preferences.PreferredDays {
		day, err := domain.WeekdayFromIndex(raw)
		if err != nil {
			return prefs, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		prefs.PreferredDays = append(prefs.PreferredDays, day)
	}

	if req.Preferences.MinGapBetweenInterviewsMins < 0 || req.Preferences.MinGapBetweenInterviewsMins > domain.MaxDurationMins {
		return prefs, fmt.Errorf("%w: minGapBetweenInterviewsMins must be within [0, %d]", ErrInvalidInput, domain.MaxDurationMins)
	}
	prefs.AvoidBackToBack = req.Preferences.AvoidBackToBack
	prefs.MinGapBetweenInterviewsMins = req.Preferences.MinGapBetweenInterviewsMins

	return prefs, nil
}
