package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание одного слота AVAILABLE
type CreateSlotRequest struct {
	TenantID       string              `json:"-"`
	OrganizerID    *string             `json:"-"`
	InterviewerIDs []string            `json:"interviewerIds"`
	StartAt        time.Time           `json:"startAt"`
	EndAt          time.Time           `json:"endAt"`
	Timezone       string              `json:"timezone,omitempty"`
	Metadata       domain.SlotMetadata `json:"metadata"`
}

// ListSlotsRequest фильтр и пагинация списка слотов
type ListSlotsRequest struct {
	TenantID string
	Status   *string
	UserID   *string
	Start    *time.Time
	End      *time.Time
	Page     int
	PerPage  int
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID           string                   `json:"id"`
	TenantID     string                   `json:"tenantId"`
	OrganizerID  *string                  `json:"organizerId,omitempty"`
	Participants []domain.SlotParticipant `json:"participants"`
	StartAt      time.Time                `json:"startAt"`
	EndAt        time.Time                `json:"endAt"`
	Timezone     string                   `json:"timezone"`
	Status       string                   `json:"status"`
	InterviewID  *string                  `json:"interviewId,omitempty"`
	Metadata     domain.SlotMetadata      `json:"metadata"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

// SlotListResponse страница слотов
type SlotListResponse struct {
	Slots   []SlotResponse `json:"slots"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// Методы конвертации

// ToDomainFilter конвертирует запрос в фильтр репозитория
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotFilter, error) {
	filter := domain.SlotFilter{
		TenantID: r.TenantID,
		UserID:   r.UserID,
		Start:    r.Start,
		End:      r.End,
		Page:     r.Page,
		PerPage:  r.PerPage,
	}
	if r.Status != nil {
		status := domain.SlotStatus(*r.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("unknown status %q", *r.Status)
		}
		filter.Status = &status
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = domain.DefaultPerPage
	}
	if filter.PerPage > domain.MaxPerPage {
		filter.PerPage = domain.MaxPerPage
	}
	return filter, nil
}

// FromDomainSlot конвертирует domain модель в DTO. Время выводится в зоне слота
func FromDomainSlot(s *domain.InterviewSlot) *SlotResponse {
	if s == nil {
		return nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		loc = time.UTC
	}
	participants := make([]domain.SlotParticipant, len(s.Participants))
	copy(participants, s.Participants)

	return &SlotResponse{
		ID:           s.ID,
		TenantID:     s.TenantID,
		OrganizerID:  s.OrganizerID,
		Participants: participants,
		StartAt:      s.StartAt.In(loc),
		EndAt:        s.EndAt.In(loc),
		Timezone:     s.Timezone,
		Status:       string(s.Status),
		InterviewID:  s.InterviewID,
		Metadata:     s.Metadata,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует страницу слотов
func FromDomainSlotList(slots []*domain.InterviewSlot, total int, filter domain.SlotFilter) *SlotListResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, *FromDomainSlot(s))
	}
	return &SlotListResponse{Slots: out, Total: total, Page: filter.Page, PerPage: filter.PerPage}
}
