package bulk_schedule

import (
	"context"

	bulkSchedule "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/bulk_schedule"
)

type BulkScheduleUseCase interface {
	Execute(ctx context.Context, req *bulkSchedule.Request) (*bulkSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
