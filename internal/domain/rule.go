package domain

import "time"

// SchedulingRule правило планирования тенанта.
// У тенанта не больше одного правила с IsDefault = true
type SchedulingRule struct {
	ID               string
	TenantID         string
	Name             string
	MinNoticeMins    int
	BufferBeforeMins int
	BufferAfterMins  int
	DefaultSlotMins  int
	AllowOverlapping bool // отключает буферы при генерации слотов
	IsDefault        bool
	CreatedBy        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BuiltInRule правило, которое применяется, если у тенанта нет своего правила по умолчанию
func BuiltInRule(tenantID string) *SchedulingRule {
	return &SchedulingRule{
		TenantID:         tenantID,
		Name:             DefaultRuleName,
		MinNoticeMins:    DefaultMinNoticeMins,
		BufferBeforeMins: DefaultBufferBeforeMins,
		BufferAfterMins:  DefaultBufferAfterMins,
		DefaultSlotMins:  DefaultSlotMins,
	}
}

// IsBuiltIn сообщает, что правило не сохранено в БД
func (r *SchedulingRule) IsBuiltIn() bool {
	return r.ID == ""
}

// MinNotice минимальное время до начала слота
func (r *SchedulingRule) MinNotice() time.Duration {
	return time.Duration(r.MinNoticeMins) * time.Minute
}

// Buffers буферы до и после. При AllowOverlapping буферы не применяются
func (r *SchedulingRule) Buffers() (before, after time.Duration) {
	if r.AllowOverlapping {
		return 0, 0
	}
	return time.Duration(r.BufferBeforeMins) * time.Minute, time.Duration(r.BufferAfterMins) * time.Minute
}
