package book_slot

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Candidate кандидат, на которого бронируется слот
type Candidate struct {
	ID    string
	Name  *string
	Email *string
	Phone *string
}

// Request запрос на бронирование слота
type Request struct {
	TenantID  string
	SlotID    string
	Candidate Candidate
	Stage     *string
	BookedBy  *string // пользователь, выполняющий бронирование
	Metadata  domain.SlotMetadata
}

// Conflict пересечение слота с занятостью участника
type Conflict struct {
	UserID   string
	StartAt  time.Time
	EndAt    time.Time
	Source   string
	SourceID string
	Label    string
}

// Response забронированный слот
type Response struct {
	SlotID       string
	InterviewID  string
	Status       domain.SlotStatus
	StartAt      time.Time
	EndAt        time.Time
	Timezone     string
	Participants []domain.SlotParticipant
	Metadata     domain.SlotMetadata
	HasConflicts bool
	Conflicts    []Conflict
}
