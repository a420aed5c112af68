package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// BusyBlockSource происхождение блока занятости
type BusyBlockSource string

const (
	BusySourceManual       BusyBlockSource = "manual"
	BusySourceCalendarSync BusyBlockSource = "calendar_sync"
	BusySourceInterview    BusyBlockSource = "interview"
)

// IsValid сообщает, известен ли источник
func (s BusyBlockSource) IsValid() bool {
	switch s {
	case BusySourceManual, BusySourceCalendarSync, BusySourceInterview:
		return true
	}
	return false
}

// BusyBlockMetadata дополнительные данные блока.
// Набор ключей закрыт: внешнее событие календаря и его заголовок
type BusyBlockMetadata struct {
	ExternalEventID  *string `json:"externalEventId,omitempty"`
	CalendarProvider *string `json:"calendarProvider,omitempty"` // google | microsoft
	Title            *string `json:"title,omitempty"`
}

// Value реализует driver.Valuer
func (m BusyBlockMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan реализует sql.Scanner
func (m *BusyBlockMetadata) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// BusyBlock интервал, в который пользователь недоступен.
// После создания не меняется, только удаляется. Блоки с источником interview
// зеркалируют бронирования и удаляются при их отмене
type BusyBlock struct {
	ID        string
	TenantID  string
	UserID    string
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	Source    BusyBlockSource
	SourceID  *string // ID интервью для source=interview, ID события для calendar_sync
	Metadata  BusyBlockMetadata
	CreatedAt time.Time
}

// Interval возвращает интервал блока в UTC
func (b *BusyBlock) Interval() interval.Interval {
	return interval.Interval{Start: b.StartAt.UTC(), End: b.EndAt.UTC()}
}

// BusyBlockFilter фильтр выборки блоков
type BusyBlockFilter struct {
	TenantID string
	UserID   string
	Start    *time.Time
	End      *time.Time
	Source   *BusyBlockSource
}

// InterviewBlocks блоки занятости, зеркалирующие интервью в календарях интервьюеров
func InterviewBlocks(iv *Interview) []*BusyBlock {
	reason := "Interview"
	if iv.Stage != nil && *iv.Stage != "" {
		reason = "Interview: " + *iv.Stage
	}

	blocks := make([]*BusyBlock, 0, len(iv.InterviewerIDs))
	for _, userID := range iv.InterviewerIDs {
		sourceID := iv.ID
		r := reason
		blocks = append(blocks, &BusyBlock{
			TenantID: iv.TenantID,
			UserID:   userID,
			StartAt:  iv.StartAt.UTC(),
			EndAt:    iv.EndAt.UTC(),
			Reason:   &r,
			Source:   BusySourceInterview,
			SourceID: &sourceID,
		})
	}
	return blocks
}
