package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// AvailabilityResolver вычисляет свободное время панели
type AvailabilityResolver interface {
	GetAvailability(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval, minDuration time.Duration) (*scheduling.AvailabilityResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
