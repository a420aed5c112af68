package reschedule_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	rescheduleSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/reschedule_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректное новое время слота"
	msgSlotNotFound       = "слот не найден"
	msgCannotReschedule   = "отмененный или истекший слот нельзя перенести"
)

type Handler struct {
	useCase RescheduleSlotUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotId}/reschedule
// Конфликты не блокируют перенос и возвращаются в ответе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /slots/{id}/reschedule - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req RescheduleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, slotID)
	if err != nil {
		h.logger.Warn("PATCH /slots/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleSlot.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, rescheduleSlot.ErrInvalidTransition):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Invalid transition: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleSlot.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/reschedule - Invalid input: slot_id=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /slots/{id}/reschedule - Failed to reschedule slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/reschedule - Slot rescheduled: slot_id=%s, has_conflicts=%t",
		slotID, result.HasConflicts)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
