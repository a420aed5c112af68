package delete_rule

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

// Handle DELETE /api/v1/scheduling-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /scheduling-rules/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, ruleID); err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("DELETE /scheduling-rules/{id} - Rule not found: rule_id=%s", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /scheduling-rules/{id} - Failed to delete rule: rule_id=%s, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /scheduling-rules/{id} - Rule deleted: rule_id=%s", ruleID)
	handlers.RespondNoContent(w)
}
