package domain

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// InterviewStatus статус интервью
type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "SCHEDULED"
	InterviewStatusCompleted InterviewStatus = "COMPLETED"
	InterviewStatusCancelled InterviewStatus = "CANCELLED"
)

// ActiveInterviewStatuses статусы, которые занимают время участников (все, кроме отмененных)
var ActiveInterviewStatuses = []InterviewStatus{
	InterviewStatusScheduled,
	InterviewStatusCompleted,
}

// Interview зафиксированное бронирование интервью
type Interview struct {
	ID             string
	TenantID       string
	CandidateID    string
	InterviewerIDs []string
	StartAt        time.Time
	EndAt          time.Time
	Status         InterviewStatus
	Stage          *string
	SlotID         *string
	BulkBatchID    *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive интервью занимает время участников
func (i *Interview) IsActive() bool {
	for _, s := range ActiveInterviewStatuses {
		if i.Status == s {
			return true
		}
	}
	return false
}

// Interval возвращает интервал интервью в UTC
func (i *Interview) Interval() interval.Interval {
	return interval.Interval{Start: i.StartAt.UTC(), End: i.EndAt.UTC()}
}

// HasInterviewer сообщает, участвует ли пользователь в интервью
func (i *Interview) HasInterviewer(userID string) bool {
	for _, id := range i.InterviewerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
