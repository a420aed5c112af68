package calendar

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	Create(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error)
	ListByUser(ctx context.Context, tenantID, userID string) ([]*domain.WorkingHours, error)
}

// BusyBlockRepository интерфейс репозитория блоков занятости
type BusyBlockRepository interface {
	Create(ctx context.Context, b *domain.BusyBlock) (*domain.BusyBlock, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.BusyBlock, error)
	List(ctx context.Context, filter domain.BusyBlockFilter) ([]*domain.BusyBlock, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// CacheInvalidator сбрасывает кэш занятости пользователей
type CacheInvalidator interface {
	Invalidate(ctx context.Context, tenantID string, userIDs ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
