package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
)

type contextKey string

const (
	tenantIDKey contextKey = "tenant_id"
	userIDKey   contextKey = "user_id"
)

const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserID   = "X-User-ID"
)

const msgMissingTenantID = "отсутствует ID тенанта"

// Auth извлекает тенанта и пользователя из заголовков.
// X-Tenant-ID обязателен, X-User-ID опционален
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(HeaderTenantID))
		if tenantID == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		if userID := strings.TrimSpace(r.Header.Get(HeaderUserID)); userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID возвращает тенанта, установленного Auth
func GetTenantID(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// GetUserID возвращает пользователя, выполняющего запрос
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithIdentity кладет тенанта и пользователя в контекст (для тестов обработчиков)
func WithIdentity(ctx context.Context, tenantID, userID string) context.Context {
	ctx = context.WithValue(ctx, tenantIDKey, tenantID)
	if userID != "" {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	return ctx
}
