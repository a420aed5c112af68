package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/types"
)

// Request модели

// WeeklyPattern окно рабочего времени в DTO
type WeeklyPattern struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	Start     string `json:"start"`     // HH:MM
	End       string `json:"end"`       // HH:MM, 24:00 = конец суток
}

// SetWorkingHoursRequest запрос на установку рабочих часов.
// Новая запись заменяет прежние на своем периоде действия
type SetWorkingHoursRequest struct {
	TenantID      string          `json:"-"`
	UserID        string          `json:"-"`
	Weekly        []WeeklyPattern `json:"weekly"`
	Timezone      string          `json:"timezone"`
	EffectiveFrom *string         `json:"effectiveFrom,omitempty"` // YYYY-MM-DD
	EffectiveTo   *string         `json:"effectiveTo,omitempty"`   // YYYY-MM-DD, включительно
}

// CreateBusyBlockRequest запрос на создание блока занятости
type CreateBusyBlockRequest struct {
	TenantID string                   `json:"-"`
	UserID   string                   `json:"-"`
	StartAt  time.Time                `json:"startAt"`
	EndAt    time.Time                `json:"endAt"`
	Reason   *string                  `json:"reason,omitempty"`
	Source   string                   `json:"source,omitempty"` // manual (по умолчанию) | calendar_sync
	SourceID *string                  `json:"sourceId,omitempty"`
	Metadata domain.BusyBlockMetadata `json:"metadata"`
}

// ListBusyBlocksRequest фильтр блоков пользователя
type ListBusyBlocksRequest struct {
	TenantID string
	UserID   string
	Start    *time.Time
	End      *time.Time
	Source   *string
}

// Response модели

// WorkingHoursResponse запись рабочих часов
type WorkingHoursResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Weekly        []WeeklyPattern `json:"weekly"`
	Timezone      string          `json:"timezone"`
	EffectiveFrom *string         `json:"effectiveFrom,omitempty"`
	EffectiveTo   *string         `json:"effectiveTo,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// WorkingHoursListResponse действующая запись и история
type WorkingHoursListResponse struct {
	Current *WorkingHoursResponse  `json:"current"`
	History []WorkingHoursResponse `json:"history"`
}

// BusyBlockResponse блок занятости
type BusyBlockResponse struct {
	ID        string                   `json:"id"`
	UserID    string                   `json:"userId"`
	StartAt   time.Time                `json:"startAt"`
	EndAt     time.Time                `json:"endAt"`
	Reason    *string                  `json:"reason,omitempty"`
	Source    string                   `json:"source"`
	SourceID  *string                  `json:"sourceId,omitempty"`
	Metadata  domain.BusyBlockMetadata `json:"metadata"`
	CreatedAt time.Time                `json:"createdAt"`
}

// BusyBlockListResponse список блоков
type BusyBlockListResponse struct {
	Blocks []BusyBlockResponse `json:"blocks"`
}

// Методы конвертации

// ToDomainWorkingHours конвертирует запрос в domain модель
func (r *SetWorkingHoursRequest) ToDomainWorkingHours() (*domain.WorkingHours, error) {
	wh := &domain.WorkingHours{
		TenantID: r.TenantID,
		UserID:   r.UserID,
		Timezone: r.Timezone,
		Weekly:   make(domain.WeeklyPatterns, 0, len(r.Weekly)),
	}
	for _, p := range r.Weekly {
		wh.Weekly = append(wh.Weekly, domain.WeeklyPattern{
			DayOfWeek: time.Weekday(p.DayOfWeek),
			Start:     types.TimeString(p.Start),
			End:       types.TimeString(p.End),
		})
	}

	var err error
	if wh.EffectiveFrom, err = parseDate("effectiveFrom", r.EffectiveFrom); err != nil {
		return nil, err
	}
	if wh.EffectiveTo, err = parseDate("effectiveTo", r.EffectiveTo); err != nil {
		return nil, err
	}
	return wh, nil
}

// ToDomainBusyBlock конвертирует запрос в domain модель
func (r *CreateBusyBlockRequest) ToDomainBusyBlock() *domain.BusyBlock {
	source := domain.BusyBlockSource(r.Source)
	if source == "" {
		source = domain.BusySourceManual
	}
	return &domain.BusyBlock{
		TenantID: r.TenantID,
		UserID:   r.UserID,
		StartAt:  r.StartAt.UTC(),
		EndAt:    r.EndAt.UTC(),
		Reason:   r.Reason,
		Source:   source,
		SourceID: r.SourceID,
		Metadata: r.Metadata,
	}
}

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.WorkingHours) *WorkingHoursResponse {
	if wh == nil {
		return nil
	}
	resp := &WorkingHoursResponse{
		ID:            wh.ID,
		UserID:        wh.UserID,
		Weekly:        make([]WeeklyPattern, 0, len(wh.Weekly)),
		Timezone:      wh.Timezone,
		EffectiveFrom: formatDate(wh.EffectiveFrom),
		EffectiveTo:   formatDate(wh.EffectiveTo),
		CreatedAt:     wh.CreatedAt,
	}
	for _, p := range wh.Weekly {
		resp.Weekly = append(resp.Weekly, WeeklyPattern{
			DayOfWeek: int(p.DayOfWeek),
			Start:     string(p.Start),
			End:       string(p.End),
		})
	}
	return resp
}

// FromDomainBusyBlock конвертирует domain модель в DTO
func FromDomainBusyBlock(b *domain.BusyBlock) *BusyBlockResponse {
	if b == nil {
		return nil
	}
	return &BusyBlockResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Reason:    b.Reason,
		Source:    string(b.Source),
		SourceID:  b.SourceID,
		Metadata:  b.Metadata,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBusyBlockList конвертирует список блоков
func FromDomainBusyBlockList(blocks []*domain.BusyBlock) *BusyBlockListResponse {
	out := make([]BusyBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, *FromDomainBusyBlock(b))
	}
	return &BusyBlockListResponse{Blocks: out}
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: expected %s: %w", field, domain.DateFormat, err)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
