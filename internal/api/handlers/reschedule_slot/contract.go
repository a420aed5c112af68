package reschedule_slot

import (
	"context"

	rescheduleSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/reschedule_slot"
)

type RescheduleSlotUseCase interface {
	Execute(ctx context.Context, req *rescheduleSlot.Request) (*rescheduleSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
