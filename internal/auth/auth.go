// Package auth resolves the API key for a CLI invocation. A key comes from
// the PRIOR_API_KEY override, then the credential file; when neither has one
// the agent registers itself once and persists the issued identity.
package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cg3io/prior/internal/api"
	"github.com/cg3io/prior/internal/branding"
	"github.com/cg3io/prior/internal/credentials"
)

const hostnameLimit = 20

// RegistrationError reports a registration the API did not complete. It
// carries the raw response so the caller can show it verbatim.
type RegistrationError struct {
	Response string
}

func (e *RegistrationError) Error() string {
	return "Registration failed: " + e.Response
}

// Resolver looks a key up without registering. It satisfies api.KeySource.
type Resolver struct {
	envKey string
	store  *credentials.Store
}

// NewResolver returns a Resolver preferring envKey over the stored record.
func NewResolver(envKey string, store *credentials.Store) *Resolver {
	return &Resolver{envKey: envKey, store: store}
}

// LookupKey returns the override key, else the stored key.
func (r *Resolver) LookupKey() (string, bool) {
	if r.envKey != "" {
		return r.envKey, true
	}
	if rec, ok := r.store.Load(); ok {
		return rec.APIKey, true
	}
	return "", false
}

// Bootstrap turns "no key" into a registered agent.
type Bootstrap struct {
	resolver *Resolver
	store    *credentials.Store
	client   *api.Client
	stderr   io.Writer
	hostname func() (string, error)
	logger   *slog.Logger

	key string
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithStderr sets where progress messages are written.
func WithStderr(w io.Writer) Option {
	return func(b *Bootstrap) {
		b.stderr = w
	}
}

// WithHostname overrides the hostname lookup used for the agent name.
func WithHostname(fn func() (string, error)) Option {
	return func(b *Bootstrap) {
		b.hostname = fn
	}
}

// WithLogger sets the logger for registration outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bootstrap) {
		b.logger = l
	}
}

// New creates a Bootstrap that registers through client and persists to store.
func New(resolver *Resolver, store *credentials.Store, client *api.Client, opts ...Option) *Bootstrap {
	b := &Bootstrap{
		resolver: resolver,
		store:    store,
		client:   client,
		stderr:   os.Stderr,
		hostname: os.Hostname,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// EnsureKey returns a usable API key, registering a new agent when none is
// configured. A rejected registration is a *RegistrationError and nothing is
// written to disk. There is no retry.
func (b *Bootstrap) EnsureKey(ctx context.Context) (string, error) {
	if b.key != "" {
		return b.key, nil
	}
	if key, ok := b.resolver.LookupKey(); ok {
		b.key = key
		return key, nil
	}

	fmt.Fprintln(b.stderr, "No API key found. Auto-registering...")

	host, err := b.hostname()
	if err != nil {
		host = "unknown"
	}
	req := api.RegisterRequest{
		AgentName: AgentName(host),
		Host:      branding.HostTag(),
	}
	resp, err := b.client.Register(ctx, req)
	if err != nil {
		return "", fmt.Errorf("registering agent: %w", err)
	}

	var reg api.Registration
	if !resp.OK() || resp.DecodeData(&reg) != nil || reg.APIKey == "" || reg.AgentID == "" {
		b.logger.Info("registration rejected", "agent_name", req.AgentName, "response", resp.Compact())
		return "", &RegistrationError{Response: resp.Compact()}
	}

	if err := b.store.Save(credentials.Record{APIKey: reg.APIKey, AgentID: reg.AgentID}); err != nil {
		return "", fmt.Errorf("saving credentials: %w", err)
	}
	b.logger.Info("registered agent", "agent_id", reg.AgentID, "path", b.store.Path())
	fmt.Fprintf(b.stderr, "Registered as %s. Key saved to %s\n", reg.AgentID, b.store.Path())

	b.key = reg.APIKey
	return reg.APIKey, nil
}

// AgentName builds the registered agent name from the first 20 characters
// of the hostname.
func AgentName(hostname string) string {
	runes := []rune(hostname)
	if len(runes) > hostnameLimit {
		runes = runes[:hostnameLimit]
	}
	return branding.AgentPrefix() + string(runes)
}
