package get_working_hours

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
	msgNotFound        = "рабочие часы пользователя не заданы"
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

// Handle GET /api/v1/users/{userId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/working-hours - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), tenantID, userID)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrWorkingHoursNotFound):
			h.logger.Warn("GET /users/{id}/working-hours - Working hours not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /users/{id}/working-hours - Failed to get working hours: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/working-hours - Working hours retrieved: user_id=%s, history=%d",
		userID, len(result.History))
	handlers.RespondJSON(w, http.StatusOK, result)
}
