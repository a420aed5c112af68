package get_team_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// TeamResolver вычисляет общее свободное время панели с нарезкой на окна
type TeamResolver interface {
	GetTeamAvailability(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval, slotDuration time.Duration) (*scheduling.AvailabilityResult, []interval.Interval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
