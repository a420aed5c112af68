package create_rule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/rules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
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

// Handle POST /api/v1/scheduling-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /scheduling-rules - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /scheduling-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		req.UserID = &userID
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("POST /scheduling-rules - Invalid data: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /scheduling-rules - Failed to create rule: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /scheduling-rules - Rule created successfully: tenant_id=%s, rule_id=%s, default=%t",
		tenantID, result.ID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
