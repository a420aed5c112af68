package list_rules

import (
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
)

const msgMissingTenantID = "отсутствует ID тенанта"

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

// Handle GET /api/v1/scheduling-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /scheduling-rules - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("GET /scheduling-rules - Failed to list rules: tenant_id=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /scheduling-rules - Rules retrieved successfully: tenant_id=%s, count=%d", tenantID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
