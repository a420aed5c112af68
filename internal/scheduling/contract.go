package scheduling

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// WorkingHoursSource источник рабочих часов пользователя.
// Пустой результат означает, что рабочие часы не заданы
type WorkingHoursSource interface {
	ListByUser(ctx context.Context, tenantID, userID string) ([]*domain.WorkingHours, error)
}

// BusyBlockSource источник блоков занятости, пересекающих диапазон
type BusyBlockSource interface {
	ListByUserInRange(ctx context.Context, tenantID, userID string, rng interval.Interval) ([]*domain.BusyBlock, error)
}

// InterviewSource источник активных (не отмененных) интервью
type InterviewSource interface {
	ListActiveByUserInRange(ctx context.Context, tenantID, userID string, rng interval.Interval) ([]*domain.Interview, error)
	ListActiveByCandidate(ctx context.Context, tenantID, candidateID string) ([]*domain.Interview, error)
}

// BusyCache кэш агрегированной занятости пользователя
type BusyCache interface {
	Get(ctx context.Context, tenantID, userID string, rng interval.Interval) (*BusySet, bool, error)
	Set(ctx context.Context, tenantID, userID string, rng interval.Interval, set *BusySet) error
}

// BusyProvider агрегированная занятость пользователей
type BusyProvider interface {
	Busy(ctx context.Context, tenantID, userID string, rng interval.Interval) (*BusySet, error)
	BusyForPanel(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval) ([]*BusySet, error)
}

// CacheMetrics учет попаданий в кэш
type CacheMetrics interface {
	RecordCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
