package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/slots"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidData        = "некорректные данные слота"
	msgPanelTooLarge      = "слишком много интервьюеров в панели"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /slots - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		req.OrganizerID = &userID
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrPanelTooLarge):
			h.logger.Warn("POST /slots - Panel too large: tenant_id=%s, interviewers=%d", tenantID, len(req.InterviewerIDs))
			handlers.RespondBadRequest(w, msgPanelTooLarge)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid data: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /slots - Failed to create slot: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: tenant_id=%s, slot_id=%s", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
