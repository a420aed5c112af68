package get_team_availability

import (
	"context"

	getTeamAvailability "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_team_availability"
)

type GetTeamAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getTeamAvailability.Request) (*getTeamAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
