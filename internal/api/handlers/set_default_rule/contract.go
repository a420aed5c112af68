package set_default_rule

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules/models"
)

type RuleService interface {
	SetDefault(ctx context.Context, tenantID, id string) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
