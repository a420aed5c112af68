package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client клиент справочника пользователей тенанта
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetUser получает карточку пользователя тенанта
func (c *Client) GetUser(ctx context.Context, tenantID, userID string) (*User, error) {
	endpoint := fmt.Sprintf("%s/internal/tenants/%s/users/%s",
		c.baseURL, url.PathEscape(tenantID), url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetUsersWithGracefulDegradation получает карточки пользователей.
// Не найденные пользователи пропускаются. При недоступности сервиса возвращает
// уже полученные карточки и ErrServiceDegraded: участники останутся без имени и email
func (c *Client) GetUsersWithGracefulDegradation(ctx context.Context, tenantID string, userIDs []string) (map[string]*User, error) {
	users := make(map[string]*User, len(userIDs))

	for _, id := range userIDs {
		user, err := c.GetUser(ctx, tenantID, id)
		if err == ErrUserNotFound {
			c.log.Warn("UserService: user id=%s not found in tenant=%s", id, tenantID)
			continue
		}
		if err != nil {
			c.log.Error("UserService unavailable, applying graceful degradation for tenant=%s: %v", tenantID, err)
			return users, fmt.Errorf("%w: user_id=%s, error=%v", ErrServiceDegraded, id, err)
		}
		users[id] = user
	}

	return users, nil
}
