package delete_rule

import "context"

type RuleService interface {
	Delete(ctx context.Context, tenantID, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
