package book_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotFound       = "слот не найден"
	msgSlotAlreadyBooked  = "слот уже забронирован"
	msgSlotNotAvailable   = "слот недоступен для бронирования"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /slots/{id}/book - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var bookedBy *string
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		bookedBy = &userID
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, slotID, bookedBy))
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /slots/{id}/book - Slot already booked: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, bookSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /slots/{id}/book - Slot not available: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/book - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/book - Invalid input: slot_id=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/{id}/book - Failed to book slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/book - Slot booked: slot_id=%s, interview_id=%s, conflicts=%d",
		slotID, result.InterviewID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
