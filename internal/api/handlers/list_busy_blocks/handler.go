package list_busy_blocks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/busy-blocks
// Query params: start, end, source (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/busy-blocks - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	serviceReq, err := ToServiceRequest(tenantID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /users/{id}/busy-blocks - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListBusyBlocks(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/busy-blocks - Invalid filter: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users/{id}/busy-blocks - Failed to list busy blocks: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/busy-blocks - Busy blocks retrieved: user_id=%s, count=%d", userID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
