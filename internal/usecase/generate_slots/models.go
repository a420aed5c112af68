package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Request запрос на генерацию слотов для панели
type Request struct {
	TenantID     string
	OrganizerID  *string // пользователь, запустивший генерацию
	UserIDs      []string
	Start        time.Time
	End          time.Time
	DurationMins *int    // по умолчанию длительность из правила
	RuleID       *string // по умолчанию правило тенанта
	Timezone     string
}

// Slot созданный слот
type Slot struct {
	ID           string
	StartAt      time.Time
	EndAt        time.Time
	Timezone     string
	Status       domain.SlotStatus
	Participants []domain.SlotParticipant
}

// Warning предупреждение о неполных данных
type Warning struct {
	UserID  string
	Code    string
	Message string
}

// Response результат генерации
type Response struct {
	RuleID       *string // nil для встроенного правила
	RuleName     string
	DurationMins int
	Slots        []Slot
	Warnings     []Warning
}
