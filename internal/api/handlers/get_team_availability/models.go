package get_team_availability

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	getTeamAvailability "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_team_availability"
)

// TeamAvailabilityRequest HTTP request model
type TeamAvailabilityRequest struct {
	UserIDs          []string `json:"userIds"`
	Start            string   `json:"start"`
	End              string   `json:"end"`
	SlotDurationMins *int     `json:"slotDurationMins,omitempty"`
	Timezone         string   `json:"timezone,omitempty"`
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type MemberResponse struct {
	UserID              string           `json:"userId"`
	Free                []WindowResponse `json:"free"`
	UnknownAvailability bool             `json:"unknownAvailability"`
}

type WarningResponse struct {
	UserID  string `json:"userId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TeamAvailabilityResponse HTTP response model
type TeamAvailabilityResponse struct {
	Start            string            `json:"start"`
	End              string            `json:"end"`
	Timezone         string            `json:"timezone"`
	SlotDurationMins *int              `json:"slotDurationMins,omitempty"`
	Members          []MemberResponse  `json:"members"`
	Combined         []WindowResponse  `json:"combined"`
	Slots            []WindowResponse  `json:"slots"`
	Warnings         []WarningResponse `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TeamAvailabilityRequest) ToUseCaseRequest(tenantID string) (*getTeamAvailability.Request, error) {
	start, err := handlers.ParseTime("start", r.Start)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime("end", r.End)
	if err != nil {
		return nil, err
	}

	return &getTeamAvailability.Request{
		TenantID:         tenantID,
		UserIDs:          r.UserIDs,
		Start:            start,
		End:              end,
		SlotDurationMins: r.SlotDurationMins,
		Timezone:         r.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTeamAvailability.Response) *TeamAvailabilityResponse {
	out := &TeamAvailabilityResponse{
		Start:            handlers.FormatTime(resp.Start),
		End:              handlers.FormatTime(resp.End),
		Timezone:         resp.Timezone,
		SlotDurationMins: resp.SlotDurationMins,
		Members:          make([]MemberResponse, 0, len(resp.Members)),
		Combined:         fromWindows(resp.Combined),
		Slots:            fromWindows(resp.Slots),
		Warnings:         make([]WarningResponse, 0, len(resp.Warnings)),
	}
	for _, m := range resp.Members {
		out.Members = append(out.Members, MemberResponse{
			UserID:              m.UserID,
			Free:                fromWindows(m.Free),
			UnknownAvailability: m.UnknownAvailability,
		})
	}
	for _, w := range resp.Warnings {
		out.Warnings = append(out.Warnings, WarningResponse{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}
	return out
}

func fromWindows(windows []getTeamAvailability.Window) []WindowResponse {
	out := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, WindowResponse{Start: handlers.FormatTime(w.Start), End: handlers.FormatTime(w.End)})
	}
	return out
}
