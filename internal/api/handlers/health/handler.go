package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Response состояние сервиса
type Response struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Duration string            `json:"duration"`
}

type Handler struct {
	checks map[string]Pinger
	logger Logger
}

// NewHandler создает health-check по набору именованных зависимостей
func NewHandler(checks map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	status := http.StatusOK
	for name, p := range h.checks {
		if err := p.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - %s is unavailable: %v", name, err)
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	resp.Duration = time.Since(start).String()

	handlers.RespondJSON(w, status, resp)
}
