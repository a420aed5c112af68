package events

import "time"

// Type тип события жизненного цикла слота
type Type string

const (
	TypeSlotBooked      Type = "slot.booked"
	TypeSlotRescheduled Type = "slot.rescheduled"
	TypeSlotCancelled   Type = "slot.cancelled"
	TypeSlotExpired     Type = "slot.expired"
)

// DefaultTopic топик событий слотов
const DefaultTopic = "scheduling.slot-events"

// SlotEvent событие жизненного цикла слота
type SlotEvent struct {
	ID             string     `json:"id"`
	Type           Type       `json:"type"`
	TenantID       string     `json:"tenantId"`
	SlotID         string     `json:"slotId"`
	InterviewID    *string    `json:"interviewId,omitempty"`
	CandidateID    *string    `json:"candidateId,omitempty"`
	InterviewerIDs []string   `json:"interviewerIds"`
	StartAt        time.Time  `json:"startAt"`
	EndAt          time.Time  `json:"endAt"`
	PreviousStart  *time.Time `json:"previousStartAt,omitempty"`
	PreviousEnd    *time.Time `json:"previousEndAt,omitempty"`
	Reason         *string    `json:"reason,omitempty"`
	OccurredAt     time.Time  `json:"occurredAt"`
}
