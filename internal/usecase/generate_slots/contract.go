package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/integrations/userservice"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// RuleRepository интерфейс репозитория правил планирования
type RuleRepository interface {
	GetWithFallback(ctx context.Context, tenantID string, ruleID *string) (*domain.SchedulingRule, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.InterviewSlot) ([]*domain.InterviewSlot, error)
}

// AvailabilityResolver вычисляет свободное время панели
type AvailabilityResolver interface {
	GetAvailability(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval, minDuration time.Duration) (*scheduling.AvailabilityResult, error)
}

// UserDirectory справочник пользователей для заполнения участников
type UserDirectory interface {
	GetUsersWithGracefulDegradation(ctx context.Context, tenantID string, userIDs []string) (map[string]*userservice.User, error)
}

// Metrics учет сгенерированных слотов
type Metrics interface {
	AddSlotsGenerated(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
