// Package identity is a client for the identity provider, which issues
// short-lived bearer tokens scoped by a named template.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"

	"medialane/internal/errs"
)

// Client fetches template-scoped bearer tokens for a user.
type Client struct {
	baseURL  string
	template string
	client   *http.Client
}

// NewClient creates an identity provider client.
func NewClient(baseURL, template string) *Client {
	return &Client{
		baseURL:  baseURL,
		template: template,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token mints a short-lived bearer token for the user under the configured
// template. An empty token maps to errs.ErrNotAuthenticated.
func (c *Client) Token(ctx context.Context, userID uuid.UUID) (string, error) {
	url := fmt.Sprintf("%s/v1/users/%s/tokens?template=%s", c.baseURL, userID, c.template)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", errs.ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("identity returned status %d: %s", resp.StatusCode, string(msg))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.Token == "" {
		return "", errs.ErrNotAuthenticated
	}
	return tr.Token, nil
}
