package get_rule

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

// Handle GET /api/v1/scheduling-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /scheduling-rules/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	rule, err := h.service.GetByID(r.Context(), tenantID, ruleID)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("GET /scheduling-rules/{id} - Rule not found: rule_id=%s", ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /scheduling-rules/{id} - Failed to get rule: rule_id=%s, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /scheduling-rules/{id} - Rule retrieved successfully: rule_id=%s", ruleID)
	handlers.RespondJSON(w, http.StatusOK, rule)
}
