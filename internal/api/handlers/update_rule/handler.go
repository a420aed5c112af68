package update_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgNotFound           = "правило планирования не найдено"
	msgInvalidData        = "некорректные данные правила планирования"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/scheduling-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /scheduling-rules/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /scheduling-rules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.ID = ruleID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("PUT /scheduling-rules/{id} - Rule not found: rule_id=%s", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /scheduling-rules/{id} - Invalid data: rule_id=%s, error=%v", ruleID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /scheduling-rules/{id} - Failed to update rule: rule_id=%s, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /scheduling-rules/{id} - Rule updated successfully: rule_id=%s", ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
