package list_busy_blocks

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar/models"
)

type CalendarService interface {
	ListBusyBlocks(ctx context.Context, req *models.ListBusyBlocksRequest) (*models.BusyBlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
