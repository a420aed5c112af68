package delete_busy_block

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
	msgNotFound        = "блок занятости не найден"
	msgManagedBlock    = "блок занятости интервью удаляется только отменой слота"
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

// Handle DELETE /api/v1/busy-blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID := mux.Vars(r)["blockId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /busy-blocks/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	if err := h.service.DeleteBusyBlock(r.Context(), tenantID, blockID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrBusyBlockNotFound):
			h.logger.Warn("DELETE /busy-blocks/{id} - Busy block not found: block_id=%s", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendar.ErrManagedBlock):
			h.logger.Warn("DELETE /busy-blocks/{id} - Managed block: block_id=%s", blockID)
			handlers.RespondConflict(w, msgManagedBlock)

		default:
			h.logger.Error("DELETE /busy-blocks/{id} - Failed to delete busy block: block_id=%s, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /busy-blocks/{id} - Busy block deleted: block_id=%s", blockID)
	handlers.RespondNoContent(w)
}
