package reschedule_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.InterviewSlot, error)
	Reschedule(ctx context.Context, slot *domain.InterviewSlot) error
}

// InterviewRepository интерфейс репозитория интервью
type InterviewRepository interface {
	UpdateTime(ctx context.Context, tenantID, id string, to interval.Interval) error
}

// BusyBlockRepository интерфейс репозитория блоков занятости
type BusyBlockRepository interface {
	MoveBySource(ctx context.Context, tenantID string, source domain.BusyBlockSource, sourceID string, to interval.Interval) ([]string, error)
}

// BusyProvider агрегированная занятость панели для проверки конфликтов
type BusyProvider interface {
	BusyForPanel(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval) ([]*scheduling.BusySet, error)
}

// CacheInvalidator сбрасывает кэш занятости пользователей
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID string, userIDs ...string) error
}

// EventPublisher публикует события слотов
type EventPublisher interface {
	Publish(ctx context.Context, event events.SlotEvent) error
}

// Metrics учет найденных конфликтов
type Metrics interface {
	AddConflicts(operation string, n int)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
