package cancel_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	cancelSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/cancel_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные данные отмены"
	msgSlotNotFound       = "слот не найден"
	msgNotBooked          = "отменить можно только забронированный слот"
)

type Handler struct {
	useCase CancelSlotUseCase
	logger  Logger
}

func NewHandler(useCase CancelSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /slots/{id}/cancel - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CancelSlotRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /slots/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, slotID))
	if err != nil {
		switch {
		case errors.Is(err, cancelSlot.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/cancel - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, cancelSlot.ErrInvalidTransition):
			h.logger.Warn("PATCH /slots/{id}/cancel - Slot is not booked: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgNotBooked)

		case errors.Is(err, cancelSlot.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/cancel - Invalid input: slot_id=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /slots/{id}/cancel - Failed to cancel slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/cancel - Slot cancelled: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
