package models

import (
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание правила планирования.
// Незаданные числовые поля берутся из встроенного правила
type CreateRuleRequest struct {
	TenantID         string  `json:"-"`
	UserID           *string `json:"-"`
	Name             string  `json:"name"`
	MinNoticeMins    *int    `json:"minNoticeMins,omitempty"`
	BufferBeforeMins *int    `json:"bufferBeforeMins,omitempty"`
	BufferAfterMins  *int    `json:"bufferAfterMins,omitempty"`
	DefaultSlotMins  *int    `json:"defaultSlotMins,omitempty"`
	AllowOverlapping bool    `json:"allowOverlapping"`
	IsDefault        bool    `json:"isDefault"`
}

// UpdateRuleRequest запрос на обновление правила.
// Все поля опциональны - обновляются только переданные значения
type UpdateRuleRequest struct {
	TenantID         string  `json:"-"`
	ID               string  `json:"-"`
	Name             *string `json:"name,omitempty"`
	MinNoticeMins    *int    `json:"minNoticeMins,omitempty"`
	BufferBeforeMins *int    `json:"bufferBeforeMins,omitempty"`
	BufferAfterMins  *int    `json:"bufferAfterMins,omitempty"`
	DefaultSlotMins  *int    `json:"defaultSlotMins,omitempty"`
	AllowOverlapping *bool   `json:"allowOverlapping,omitempty"`
}

// Response модели

// RuleResponse ответ с данными правила
type RuleResponse struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	Name             string    `json:"name"`
	MinNoticeMins    int       `json:"minNoticeMins"`
	BufferBeforeMins int       `json:"bufferBeforeMins"`
	BufferAfterMins  int       `json:"bufferAfterMins"`
	DefaultSlotMins  int       `json:"defaultSlotMins"`
	AllowOverlapping bool      `json:"allowOverlapping"`
	IsDefault        bool      `json:"isDefault"`
	CreatedBy        *string   `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// ToDomainRule конвертирует запрос в domain модель
func (r *CreateRuleRequest) ToDomainRule() *domain.SchedulingRule {
	rule := domain.BuiltInRule(r.TenantID)
	rule.Name = r.Name
	if r.MinNoticeMins != nil {
		rule.MinNoticeMins = *r.MinNoticeMins
	}
	if r.BufferBeforeMins != nil {
		rule.BufferBeforeMins = *r.BufferBeforeMins
	}
	if r.BufferAfterMins != nil {
		rule.BufferAfterMins = *r.BufferAfterMins
	}
	if r.DefaultSlotMins != nil {
		rule.DefaultSlotMins = *r.DefaultSlotMins
	}
	rule.AllowOverlapping = r.AllowOverlapping
	rule.IsDefault = r.IsDefault
	rule.CreatedBy = r.UserID
	return rule
}

// ApplyTo применяет переданные поля к правилу
func (r *UpdateRuleRequest) ApplyTo(rule *domain.SchedulingRule) {
	if r.Name != nil {
		rule.Name = *r.Name
	}
	if r.MinNoticeMins != nil {
		rule.MinNoticeMins = *r.MinNoticeMins
	}
	if r.BufferBeforeMins != nil {
		rule.BufferBeforeMins = *r.BufferBeforeMins
	}
	if r.BufferAfterMins != nil {
		rule.BufferAfterMins = *r.BufferAfterMins
	}
	if r.DefaultSlotMins != nil {
		rule.DefaultSlotMins = *r.DefaultSlotMins
	}
	if r.AllowOverlapping != nil {
		rule.AllowOverlapping = *r.AllowOverlapping
	}
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.SchedulingRule) *RuleResponse {
	if r == nil {
		return nil
	}
	return &RuleResponse{
		ID:               r.ID,
		TenantID:         r.TenantID,
		Name:             r.Name,
		MinNoticeMins:    r.MinNoticeMins,
		BufferBeforeMins: r.BufferBeforeMins,
		BufferAfterMins:  r.BufferAfterMins,
		DefaultSlotMins:  r.DefaultSlotMins,
		AllowOverlapping: r.AllowOverlapping,
		IsDefault:        r.IsDefault,
		CreatedBy:        r.CreatedBy,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил
func FromDomainRuleList(rules []*domain.SchedulingRule) *RuleListResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, *FromDomainRule(r))
	}
	return &RuleListResponse{Rules: out}
}
