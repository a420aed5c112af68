package cancel_slot

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.InterviewSlot, error)
	UpdateStatus(ctx context.Context, tenantID, id string, from, to domain.SlotStatus) error
}

// InterviewRepository интерфейс репозитория интервью
type InterviewRepository interface {
	UpdateStatus(ctx context.Context, tenantID, id string, status domain.InterviewStatus) error
}

// BusyBlockRepository интерфейс репозитория блоков занятости
type BusyBlockRepository interface {
	DeleteBySource(ctx context.Context, tenantID string, source domain.BusyBlockSource, sourceID string) ([]string, error)
}

// CacheInvalidator сбрасывает кэш занятости пользователей
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID string, userIDs ...string) error
}

// EventPublisher публикует события слотов
type EventPublisher interface {
	Publish(ctx context.Context, event events.SlotEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
