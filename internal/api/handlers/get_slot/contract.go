package get_slot

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/slots/models"
)

type SlotService interface {
	GetByID(ctx context.Context, tenantID, id string) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
