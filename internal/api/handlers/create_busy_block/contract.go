package create_busy_block

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar/models"
)

type CalendarService interface {
	CreateBusyBlock(ctx context.Context, req *models.CreateBusyBlockRequest) (*models.BusyBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
