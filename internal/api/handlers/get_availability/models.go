package get_availability

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_availability"
)

// AvailabilityRequest HTTP request model
type AvailabilityRequest struct {
	UserIDs      []string `json:"userIds"`
	Start        string   `json:"start"` // RFC 3339
	End          string   `json:"end"`
	DurationMins *int     `json:"durationMins,omitempty"`
	Timezone     string   `json:"timezone,omitempty"`
}

type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type UserFreeResponse struct {
	UserID              string           `json:"userId"`
	Free                []WindowResponse `json:"free"`
	UnknownAvailability bool             `json:"unknownAvailability"`
}

type WarningResponse struct {
	UserID  string `json:"userId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Start    string             `json:"start"`
	End      string             `json:"end"`
	Timezone string             `json:"timezone"`
	Users    []UserFreeResponse `json:"users"`
	Combined []WindowResponse   `json:"combined"`
	Warnings []WarningResponse  `json:"warnings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AvailabilityRequest) ToUseCaseRequest(tenantID string) (*getAvailability.Request, error) {
	start, err := handlers.ParseTime("start", r.Start)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime("end", r.End)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		TenantID:     tenantID,
		UserIDs:      r.UserIDs,
		Start:        start,
		End:          end,
		DurationMins: r.DurationMins,
		Timezone:     r.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Start:    handlers.FormatTime(resp.Start),
		End:      handlers.FormatTime(resp.End),
		Timezone: resp.Timezone,
		Users:    make([]UserFreeResponse, 0, len(resp.Users)),
		Combined: fromWindows(resp.Combined),
		Warnings: make([]WarningResponse, 0, len(resp.Warnings)),
	}
	for _, u := range resp.Users {
		out.Users = append(out.Users, UserFreeResponse{
			UserID:              u.UserID,
			Free:                fromWindows(u.Free),
			UnknownAvailability: u.UnknownAvailability,
		})
	}
	for _, w := range resp.Warnings {
		out.Warnings = append(out.Warnings, WarningResponse{UserID: w.UserID, Code: w.Code, Message: w.Message})
	}
	return out
}

func fromWindows(windows []getAvailability.Window) []WindowResponse {
	out := make([]WindowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, WindowResponse{Start: handlers.FormatTime(w.Start), End: handlers.FormatTime(w.End)})
	}
	return out
}
