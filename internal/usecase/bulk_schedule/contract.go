package bulk_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// InterviewRepository интерфейс репозитория интервью
type InterviewRepository interface {
	Create(ctx context.Context, iv *domain.Interview) (*domain.Interview, error)
	ListActiveByCandidate(ctx context.Context, tenantID, candidateID string) ([]*domain.Interview, error)
}

// BusyBlockRepository интерфейс репозитория блоков занятости
type BusyBlockRepository interface {
	CreateBatch(ctx context.Context, blocks []*domain.BusyBlock) error
}

// BusyProvider агрегированная занятость интервьюеров
type BusyProvider interface {
	BusyForPanel(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval) ([]*scheduling.BusySet, error)
}

// CacheInvalidator сбрасывает кэш занятости пользователей
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID string, userIDs ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
