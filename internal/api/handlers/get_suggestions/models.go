package get_suggestions

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	getSuggestions "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_suggestions"
)

type PreferencesRequest struct {
	PreferredTimeOfDay          string `json:"preferredTimeOfDay,omitempty"` // morning | afternoon | evening | any
	PreferredDays               []int  `json:"preferredDays,omitempty"`      // 0 = воскресенье .. 6 = суббота
	AvoidBackToBack             bool   `json:"avoidBackToBack"`
	MinGapBetweenInterviewsMins int    `json:"minGapBetweenInterviewsMins"`
}

// SuggestionsRequest HTTP request model
type SuggestionsRequest struct {
	UserIDs        []string           `json:"userIds"`
	Start          string             `json:"start"`
	End            string             `json:"end"`
	DurationMins   int                `json:"durationMins"`
	RuleID         *string            `json:"ruleId,omitempty"`
	CandidateID    *string            `json:"candidateId,omitempty"`
	Preferences    PreferencesRequest `json:"preferences"`
	MaxSuggestions *int               `json:"maxSuggestions,omitempty"`
	Timezone       string             `json:"timezone,omitempty"`
}

type SuggestionResponse struct {
	StartAt          string          `json:"startAt"`
	EndAt            string          `json:"endAt"`
	Score            int             `json:"score"`
	Reasons          []string        `json:"reasons"`
	UserAvailability map[string]bool `json:"userAvailability"`
}

type QueryRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type WarningResponse struct {
	UserID  string `json:"userId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuggestionsResponse HTTP response model
type SuggestionsResponse struct {
	Timezone            string               `json:"timezone"`
	Suggestions         []SuggestionResponse `json:"suggestions"`
	TotalAvailableSlots int                  `json:"totalAvailableSlots"`
	QueryRange          QueryRangeResponse   `json:"queryRange"`
	ProcessingTimeMs    int64                `json:"processingTimeMs"`
	Warnings            []WarningResponse    `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SuggestionsRequest) ToUseCaseRequest(tenantID string) (*getSuggestions.Request, error) {
	start, err := handlers.ParseTime("start", r.Start)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime("end", r.End)
	if err != nil {
		return nil, err
	}

	return &getSuggestions.Request{
		TenantID:     tenantID,
		UserIDs:      r.UserIDs,
		Start:        start,
		End:          end,
		DurationMins: r.DurationMins,
		RuleID:       r.RuleID,
		CandidateID:  r.CandidateID,
		Preferences: getSuggestions.Preferences{
			TimeOfDay:                   r.Preferences.PreferredTimeOfDay,
			PreferredDays:               r.Preferences.PreferredDays,
			AvoidBackToBack:             r.Preferences.AvoidBackToBack,
			MinGapBetweenInterviewsMins: r.Preferences.MinGapBetweenInterviewsMins,
		},
		MaxSuggestions: r.MaxSuggestions,
		Timezone:       r.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSuggestions.Response) *SuggestionsResponse {
	out := &SuggestionsResponse{
		Timezone:            resp.Timezone,
		Suggestions:         make([]SuggestionResponse, 0, len(resp.Suggestions)),
		TotalAvailableSlots: resp.TotalAvailableSlots,
		QueryRange: QueryRangeResponse{
			Start: handlers.FormatTime(resp.QueryStart),
			End:   handlers.FormatTime(resp.QueryEnd),
		},
		ProcessingTimeMs: resp.ProcessingTime.Milliseconds(),
		Warnings:         make([]WarningResponse, 0, len(resp.Warnings)),
	}
	for _, s := range resp.Suggestions {
		reasons := s.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out.Suggestions = append(out.Suggestions, SuggestionResponse{
			StartAt:          handlers.FormatTime(s.StartAt),
			EndAt:            handlers.FormatTime(s.EndAt),
			Score:            s.Score,
			Reasons:          reasons,
			UserAvailability: s.UserAvailability,
		})
	}
	for _, w := range resp.Warnings {
		out.Warnings = append(out.Warnings, WarningResponse{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}
	return out
}
