package get_suggestions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	getSuggestions "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/get_suggestions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры подбора времени"
	msgPanelTooLarge      = "слишком много участников в запросе"
	msgRuleNotFound       = "правило планирования не найдено"
)

type Handler struct {
	useCase GetSuggestionsUseCase
	logger  Logger
}

func NewHandler(useCase GetSuggestionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/suggestions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /suggestions - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req SuggestionsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /suggestions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /suggestions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSuggestions.ErrRuleNotFound):
			h.logger.Warn("POST /suggestions - Rule not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, getSuggestions.ErrPanelTooLarge):
			h.logger.Warn("POST /suggestions - Panel too large: tenant_id=%s, users=%d", tenantID, len(req.UserIDs))
			handlers.RespondBadRequest(w, msgPanelTooLarge)

		case errors.Is(err, getSuggestions.ErrInvalidInput):
			h.logger.Warn("POST /suggestions - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /suggestions - Failed to build suggestions: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /suggestions - Suggestions built: tenant_id=%s, count=%d", tenantID, len(result.Suggestions))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
