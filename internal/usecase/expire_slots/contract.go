package expire_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// ExpireStarted переводит AVAILABLE слоты, начавшиеся до cutoff, в EXPIRED
	ExpireStarted(ctx context.Context, cutoff time.Time, limit int) ([]*domain.InterviewSlot, error)
}

// EventPublisher публикует события слотов
type EventPublisher interface {
	Publish(ctx context.Context, event events.SlotEvent) error
}

// Metrics учет истекших слотов
type Metrics interface {
	AddSlotsExpired(n int)
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
