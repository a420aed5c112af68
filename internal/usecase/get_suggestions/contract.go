package get_suggestions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	"github.com/m04kA/SMC-InterviewScheduler/internal/scheduling"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/interval"
)

// AvailabilityResolver вычисляет свободное время панели
type AvailabilityResolver interface {
	GetAvailability(ctx context.Context, tenantID string, userIDs []string, rng interval.Interval, minDuration time.Duration) (*scheduling.AvailabilityResult, error)
}

// RuleRepository интерфейс репозитория правил планирования
type RuleRepository interface {
	GetWithFallback(ctx context.Context, tenantID string, ruleID *string) (*domain.SchedulingRule, error)
}

// CandidateInterviews источник интервью кандидата
type CandidateInterviews interface {
	ListActiveByCandidate(ctx context.Context, tenantID, candidateID string) ([]*domain.Interview, error)
}

// Ranker ранжирование слотов
type Ranker interface {
	Rank(slots []interval.Interval, in scheduling.RankInput) []scheduling.Suggestion
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
