package get_team_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	getTeamAvailability "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_team_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры запроса доступности команды"
	msgPanelTooLarge      = "слишком много участников команды в запросе"
)

type Handler struct {
	useCase GetTeamAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetTeamAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/team
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability/team - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req TeamAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/team - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /availability/team - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getTeamAvailability.ErrPanelTooLarge):
			h.logger.Warn("POST /availability/team - Team too large: tenant_id=%s, users=%d", tenantID, len(req.UserIDs))
			handlers.RespondBadRequest(w, msgPanelTooLarge)

		case errors.Is(err, getTeamAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availability/team - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability/team - Failed to resolve team availability: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability/team - Team availability resolved: tenant_id=%s, members=%d, slots=%d",
		tenantID, len(result.Members), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
