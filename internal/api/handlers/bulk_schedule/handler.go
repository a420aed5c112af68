package bulk_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/api/middleware"
	bulkSchedule "github.com/m04kA/SMC-InterviewScheduler/internal/usecase/bulk_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidInput       = "некорректные параметры массового планирования"
	msgLegacyFields       = "поля strategy и scheduledTime не поддерживаются, используйте mode и startTime"
	msgPanelTooLarge      = "слишком много интервьюеров в панели"
)

type Handler struct {
	useCase BulkScheduleUseCase
	logger  Logger
}

func NewHandler(useCase BulkScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/interviews/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /interviews/bulk - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req BulkScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /interviews/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /interviews/bulk - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bulkSchedule.ErrLegacyFields):
			h.logger.Warn("POST /interviews/bulk - Legacy fields used: tenant_id=%s", tenantID)
			handlers.RespondBadRequest(w, msgLegacyFields)

		case errors.Is(err, bulkSchedule.ErrPanelTooLarge):
			h.logger.Warn("POST /interviews/bulk - Panel too large: tenant_id=%s, interviewers=%d",
				tenantID, len(req.InterviewerIDs))
			handlers.RespondBadRequest(w, msgPanelTooLarge)

		case errors.Is(err, bulkSchedule.ErrInvalidInput):
			h.logger.Warn("POST /interviews/bulk - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /interviews/bulk - Failed to schedule interviews: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /interviews/bulk - Bulk scheduled: tenant_id=%s, batch=%s, scheduled=%d, skipped=%d",
		tenantID, result.BulkBatchID, result.Scheduled, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
