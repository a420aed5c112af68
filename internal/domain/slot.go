package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// SlotStatus статус слота интервью
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "AVAILABLE"
	SlotStatusBooked    SlotStatus = "BOOKED"
	SlotStatusCancelled SlotStatus = "CANCELLED"
	SlotStatusExpired   SlotStatus = "EXPIRED"
)

// slotTransitions допустимые переходы статусов.
// BOOKED -> AVAILABLE запрещен: перенос меняет время слота, а не статус
var slotTransitions = map[SlotStatus][]SlotStatus{
	SlotStatusAvailable: {SlotStatusBooked, SlotStatusExpired},
	SlotStatusBooked:    {SlotStatusCancelled},
}

// IsValid сообщает, известен ли статус
func (s SlotStatus) IsValid() bool {
	switch s {
	case SlotStatusAvailable, SlotStatusBooked, SlotStatusCancelled, SlotStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo проверяет переход по машине состояний
func (s SlotStatus) CanTransitionTo(next SlotStatus) bool {
	for _, allowed := range slotTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParticipantType тип участника слота
type ParticipantType string

const (
	ParticipantUser      ParticipantType = "user"
	ParticipantCandidate ParticipantType = "candidate"
)

// SlotParticipant участник слота. Время участников типа user защищено проверкой конфликтов,
// кандидаты друг с другом не сверяются
type SlotParticipant struct {
	Type  ParticipantType `json:"type"`
	ID    string          `json:"id"`
	Email *string         `json:"email,omitempty"`
	Phone *string         `json:"phone,omitempty"`
	Name  *string         `json:"name,omitempty"`
}

// Participants список участников, хранится в JSONB
type Participants []SlotParticipant

// Value реализует driver.Valuer
func (p Participants) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan реализует sql.Scanner
func (p *Participants) Scan(src interface{}) error {
	return scanJSON(src, p)
}

// UserIDs ID участников-интервьюеров
func (p Participants) UserIDs() []string {
	ids := make([]string, 0, len(p))
	for _, participant := range p {
		if participant.Type == ParticipantUser {
			ids = append(ids, participant.ID)
		}
	}
	return ids
}

// Candidate первый участник-кандидат, если он есть
func (p Participants) Candidate() (SlotParticipant, bool) {
	for _, participant := range p {
		if participant.Type == ParticipantCandidate {
			return participant, true
		}
	}
	return SlotParticipant{}, false
}

// SlotMetadata дополнительные данные слота с закрытым набором ключей
type SlotMetadata struct {
	RoomID           *string `json:"roomId,omitempty"`
	MeetingLink      *string `json:"meetingLink,omitempty"`
	Location         *string `json:"location,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	BookingSource    *string `json:"bookingSource,omitempty"` // откуда пришло бронирование: portal, recruiter, bulk
	RescheduleReason *string `json:"rescheduleReason,omitempty"`
}

// Value реализует driver.Valuer
func (m SlotMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan реализует sql.Scanner
func (m *SlotMetadata) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// Merge переносит заданные поля other поверх текущих
func (m SlotMetadata) Merge(other SlotMetadata) SlotMetadata {
	if other.RoomID != nil {
		m.RoomID = other.RoomID
	}
	if other.MeetingLink != nil {
		m.MeetingLink = other.MeetingLink
	}
	if other.Location != nil {
		m.Location = other.Location
	}
	if other.Notes != nil {
		m.Notes = other.Notes
	}
	if other.BookingSource != nil {
		m.BookingSource = other.BookingSource
	}
	if other.RescheduleReason != nil {
		m.RescheduleReason = other.RescheduleReason
	}
	return m
}

// InterviewSlot бронируемая единица времени
type InterviewSlot struct {
	ID           string
	TenantID     string
	OrganizerID  *string
	Participants Participants
	StartAt      time.Time
	EndAt        time.Time
	Timezone     string
	Status       SlotStatus
	InterviewID  *string
	Metadata     SlotMetadata
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Interval возвращает интервал слота в UTC
func (s *InterviewSlot) Interval() interval.Interval {
	return interval.Interval{Start: s.StartAt.UTC(), End: s.EndAt.UTC()}
}

// Duration длительность слота
func (s *InterviewSlot) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// TransitionTo переводит слот в новый статус с проверкой машины состояний
func (s *InterviewSlot) TransitionTo(next SlotStatus) error {
	if !s.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, next)
	}
	s.Status = next
	return nil
}

// CanBeRescheduled перенос допустим для активных слотов
func (s *InterviewSlot) CanBeRescheduled() bool {
	return s.Status == SlotStatusAvailable || s.Status == SlotStatusBooked
}

// SlotFilter фильтр выборки слотов
type SlotFilter struct {
	TenantID string
	Status   *SlotStatus
	UserID   *string
	Start    *time.Time
	End      *time.Time
	Page     int
	PerPage  int
}
