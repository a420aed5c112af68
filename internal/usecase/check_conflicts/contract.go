package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// BusyProvider агрегированная занятость участников
type BusyProvider interface {
	BusyForPanel(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval) ([]*scheduling.BusySet, error)
}

// Metrics учет найденных конфликтов
type Metrics interface {
	AddConflicts(operation string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
