package rules

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// RuleRepository интерфейс репозитория правил планирования
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.SchedulingRule) (*domain.SchedulingRule, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.SchedulingRule, error)
	List(ctx context.Context, tenantID string) ([]*domain.SchedulingRule, error)
	Update(ctx context.Context, rule *domain.SchedulingRule) error
	ClearDefault(ctx context.Context, tenantID string) error
	SetDefault(ctx context.Context, tenantID, id string) error
	Delete(ctx context.Context, tenantID, id string) error
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
