package get_working_hours

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar/models"
)

type CalendarService interface {
	GetWorkingHours(ctx context.Context, tenantID, userID string) (*models.WorkingHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
