package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	generateSlots "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры генерации слотов"
	msgPanelTooLarge      = "слишком много интервьюеров в панели"
	msgRuleNotFound       = "правило планирования не найдено"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /slots/generate - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var organizerID *string
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		organizerID = &userID
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, organizerID)
	if err != nil {
		h.logger.Warn("POST /slots/generate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrRuleNotFound):
			h.logger.Warn("POST /slots/generate - Rule not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, generateSlots.ErrPanelTooLarge):
			h.logger.Warn("POST /slots/generate - Panel too large: tenant_id=%s, interviewers=%d",
				tenantID, len(req.InterviewerIDs))
			handlers.RespondBadRequest(w, msgPanelTooLarge)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/generate - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/generate - Failed to generate slots: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/generate - Slots generated: tenant_id=%s, count=%d, rule=%s",
		tenantID, len(result.Slots), result.RuleName)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
