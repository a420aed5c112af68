package check_conflicts

import (
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	checkConflicts "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/check_conflicts"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	UserIDs            []string `json:"userIds"`
	Start              string   `json:"start"`
	End                string   `json:"end"`
	ExcludeInterviewID *string  `json:"excludeInterviewId,omitempty"`
	Timezone           string   `json:"timezone,omitempty"`
}

type ConflictResponse struct {
	UserID       string `json:"userId"`
	StartAt      string `json:"startAt"`
	EndAt        string `json:"endAt"`
	OverlapStart string `json:"overlapStart"`
	OverlapEnd   string `json:"overlapEnd"`
	Source       string `json:"source"`
	SourceID     string `json:"sourceId,omitempty"`
	Label        string `json:"label,omitempty"`
}

// CheckConflictsResponse HTTP response model
type CheckConflictsResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest(tenantID string) (*checkConflicts.Request, error) {
	start, err := handlers.ParseTime("start", r.Start)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseTime("end", r.End)
	if err != nil {
		return nil, err
	}

	return &checkConflicts.Request{
		TenantID:  tenantID,
		UserIDs:   r.UserIDs,
		Start:     start,
		End:       end,
		ExcludeID: r.ExcludeInterviewID,
		Timezone:  r.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflicts.Response) *CheckConflictsResponse {
	out := &CheckConflictsResponse{
		HasConflicts: resp.HasConflicts,
		Conflicts:    make([]ConflictResponse, 0, len(resp.Conflicts)),
	}
	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			UserID:       c.UserID,
			StartAt:      handlers.FormatTime(c.StartAt),
			EndAt:        handlers.FormatTime(c.EndAt),
			OverlapStart: handlers.FormatTime(c.OverlapStart),
			OverlapEnd:   handlers.FormatTime(c.OverlapEnd),
			Source:       c.Source,
			SourceID:     c.SourceID,
			Label:        c.Label,
		})
	}
	return out
}
