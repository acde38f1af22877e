// Package identity talks to the external identity provider that owns
// credentials and organization membership.
package identity

import (
	"context"
	"fmt"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/observability"

	"github.com/go-resty/resty/v2"
)

// Payload is the identity provider's login response: an account block plus
// the organization it belongs to. Both blocks are kept schemaless since the
// provider owns their shape.
type Payload struct {
	User map[string]any `json:"user"`
	NGO  map[string]any `json:"ngo"`
}

// OrgID extracts the organization id from the payload. The provider encodes
// numbers as JSON floats.
func (p Payload) OrgID() (int64, bool) {
	if p.NGO == nil {
		return 0, false
	}
	switch v := p.NGO["id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

// Client authenticates credentials against the identity provider.
type Client struct {
	http *resty.Client
}

// NewClient creates an identity client for the given base URL.
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Login verifies the credentials with the provider and returns the account
// payload. Invalid credentials come back as an unauthorized error; transport
// failures are reported as internal errors.
func (c *Client) Login(ctx context.Context, email, password string) (Payload, error) {
	var payload Payload
	var apiErr loginError

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&payload).
		SetError(&apiErr).
		Post("/api/login.json")
	if err != nil {
		observability.ExternalAPICalls.WithLabelValues("identity", "error").Inc()
		return Payload{}, models.NewInternalError(fmt.Errorf("identity provider unreachable: %w", err))
	}

	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		observability.ExternalAPICalls.WithLabelValues("identity", "unauthorized").Inc()
		return Payload{}, models.NewUnauthorizedError("Invalid email or password")
	}
	if resp.IsError() {
		observability.ExternalAPICalls.WithLabelValues("identity", "error").Inc()
		return Payload{}, models.NewInternalError(fmt.Errorf("identity provider returned status %d", resp.StatusCode()))
	}

	observability.ExternalAPICalls.WithLabelValues("identity", "success").Inc()
	return payload, nil
}
