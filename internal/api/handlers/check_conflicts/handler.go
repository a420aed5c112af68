package check_conflicts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	checkConflicts "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/check_conflicts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры проверки конфликтов"
	msgPanelTooLarge      = "слишком много участников в запросе"
)

type Handler struct {
	useCase CheckConflictsUseCase
	logger  Logger
}

func NewHandler(useCase CheckConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/conflicts/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /conflicts/check - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /conflicts/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /conflicts/check - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkConflicts.ErrPanelTooLarge):
			h.logger.Warn("POST /conflicts/check - Panel too large: tenant_id=%s, users=%d", tenantID, len(req.UserIDs))
			handlers.RespondBadRequest(w, msgPanelTooLarge)

		case errors.Is(err, checkConflicts.ErrInvalidInput):
			h.logger.Warn("POST /conflicts/check - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /conflicts/check - Failed to check conflicts: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /conflicts/check - Conflicts checked: tenant_id=%s, conflicts=%d", tenantID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
