package slots

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.InterviewSlot) (*domain.InterviewSlot, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.InterviewSlot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.InterviewSlot, int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
