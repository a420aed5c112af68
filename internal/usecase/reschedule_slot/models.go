package reschedule_slot

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Request запрос на перенос слота
type Request struct {
	TenantID string
	SlotID   string
	NewStart time.Time
	NewEnd   time.Time
	Reason   *string
}

// Conflict пересечение нового времени с занятостью участника
type Conflict struct {
	UserID   string
	StartAt  time.Time
	EndAt    time.Time
	Source   string
	SourceID string
	Label    string
}

// Response перенесенный слот. Конфликты не блокируют перенос
type Response struct {
	SlotID        string
	InterviewID   *string
	Status        domain.SlotStatus
	StartAt       time.Time
	EndAt         time.Time
	PreviousStart time.Time
	PreviousEnd   time.Time
	Timezone      string
	HasConflicts  bool
	Conflicts     []Conflict
}
