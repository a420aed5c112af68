package update_rule

import (
	"context"

	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules/models"
)

type RuleService interface {
	Update(ctx context.Context, req *models.UpdateRuleRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
