package set_default_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgNotFound        = "правило планирования не найдено"
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

// Handle PUT /api/v1/scheduling-rules/{ruleId}/default
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /scheduling-rules/{id}/default - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.SetDefault(r.Context(), tenantID, ruleID)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("PUT /scheduling-rules/{id}/default - Rule not found: rule_id=%s", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /scheduling-rules/{id}/default - Failed to set default rule: rule_id=%s, error=%v",
				ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /scheduling-rules/{id}/default - Default rule set: tenant_id=%s, rule_id=%s", tenantID, ruleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
