package api

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterRequest is the body of an agent self-registration.
type RegisterRequest struct {
	AgentName string `json:"agentName"`
	Host      string `json:"host"`
}

// Registration is the data returned by a successful registration.
type Registration struct {
	APIKey  string `json:"apiKey"`
	AgentID string `json:"agentId"`
}

// Register creates a new agent identity. It is sent without a key unless the
// KeySource finds one.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/v1/agents/register", req, "")
}

// Search queries the knowledge base.
func (c *Client) Search(ctx context.Context, key string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/v1/knowledge/search", body, key)
}

// Contribute submits a new entry.
func (c *Client) Contribute(ctx context.Context, key string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/v1/knowledge/contribute", body, key)
}

// Feedback records an outcome, and optionally a correction, for an entry.
func (c *Client) Feedback(ctx context.Context, key, id string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, entryPath(id)+"/feedback", body, key)
}

// Get fetches a single entry.
func (c *Client) Get(ctx context.Context, key, id string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, entryPath(id), nil, key)
}

// Retract withdraws one of the agent's own entries.
func (c *Client) Retract(ctx context.Context, key, id string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, entryPath(id), nil, key)
}

// Me returns the agent profile.
func (c *Client) Me(ctx context.Context, key string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/v1/agents/me", nil, key)
}

// Credits returns the agent's credit balance.
func (c *Client) Credits(ctx context.Context, key string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/v1/agents/me/credits", nil, key)
}

// Claim starts tying the agent to an email address.
func (c *Client) Claim(ctx context.Context, key, email string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/v1/agents/claim", map[string]string{"email": email}, key)
}

// Verify completes a claim with the emailed code.
func (c *Client) Verify(ctx context.Context, key, code string) (*Response, error) {
	return c.Do(ctx, http.MethodPost, "/v1/agents/verify", map[string]string{"code": code}, key)
}

func entryPath(id string) string {
	return "/v1/knowledge/" + url.PathEscape(id)
}
