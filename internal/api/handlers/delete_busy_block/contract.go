package delete_busy_block

import "context"

type CalendarService interface {
	DeleteBusyBlock(ctx context.Context, tenantID, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
