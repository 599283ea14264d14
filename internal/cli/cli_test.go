package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cg3io/prior/internal/config"
	"github.com/cg3io/prior/internal/credentials"
	"github.com/cg3io/prior/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	route string
	auth  string
	body  map[string]any
}

type harness struct {
	t        *testing.T
	srv      *httptest.Server
	calls    []call
	replies  map[string]string
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	credPath string
	app      *app
}

// newHarness starts a fake API answering "METHOD /path" routes from replies.
// Unknown routes answer {"ok":false,"error":"not found"}.
func newHarness(t *testing.T, envKey string, replies map[string]string) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		replies:  replies,
		credPath: filepath.Join(t.TempDir(), ".prior", "config.json"),
	}
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.EscapedPath()
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)
		h.calls = append(h.calls, call{route: route, auth: r.Header.Get("Authorization"), body: body})

		reply, ok := h.replies[route]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			reply = `{"ok":false,"error":"not found"}`
		}
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(h.srv.Close)

	settings := &config.Settings{
		BaseURL:         h.srv.URL,
		APIKey:          envKey,
		CredentialsPath: h.credPath,
	}
	h.app = newApp(settings, &h.stdout, &h.stderr, logging.Discard())
	return h
}

func (h *harness) run(argv ...string) error {
	return run(context.Background(), h.app, argv)
}

func (h *harness) routes() []string {
	var out []string
	for _, c := range h.calls {
		out = append(out, c.route)
	}
	return out
}

func TestNoArgsPrintsUsage(t *testing.T) {
	for _, argv := range [][]string{nil, {"--help"}, {"-h"}, {"help"}} {
		h := newHarness(t, "ask_env", nil)
		require.NoError(t, h.run(argv...), "argv %v", argv)
		assert.Contains(t, h.stdout.String(), "Prior: Knowledge Exchange for AI Agents", "argv %v", argv)
		assert.Contains(t, h.stdout.String(), "search <query>")
		assert.Contains(t, h.stdout.String(), "PRIOR_API_KEY")
		assert.Empty(t, h.calls)
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t, "ask_env", nil)
	err := h.run("bogus", "x")
	require.Error(t, err)
	assert.Equal(t, "Unknown command: bogus. Run without arguments for help.\n", h.stderr.String())
	assert.Empty(t, h.stdout.String())
	assert.Empty(t, h.calls)
}

func TestSearchEmptyQueryMakesNoRequest(t *testing.T) {
	h := newHarness(t, "", nil)
	err := h.run("search", "--max-results", "5")
	require.Error(t, err)
	assert.Contains(t, h.stderr.String(), "Usage: prior search <query>")
	assert.Empty(t, h.calls, "neither registration nor search may be attempted")
}

func TestContributeMissingTagsMakesNoRequest(t *testing.T) {
	h := newHarness(t, "", nil)
	err := h.run("contribute", "--title", "T", "--content", "C")
	require.Error(t, err)
	assert.Contains(t, h.stderr.String(), "Required: --title, --content, --tags")
	assert.Empty(t, h.calls)
}

func TestSearchEmptyResultsNudgesContribution(t *testing.T) {
	reply := `{"ok":true,"data":{"results":[]}}`
	h := newHarness(t, "ask_env", map[string]string{"POST /v1/knowledge/search": reply})

	require.NoError(t, h.run("search", "Cannot", "find", "module"))

	assert.Equal(t, "{\n  \"ok\": true,\n  \"data\": {\n    \"results\": []\n  }\n}\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "No results found. If you solve this problem, consider contributing your solution:")

	require.Len(t, h.calls, 1)
	assert.Equal(t, "Bearer ask_env", h.calls[0].auth)
	assert.Equal(t, "Cannot find module", h.calls[0].body["query"])
	assert.Equal(t, float64(3), h.calls[0].body["maxResults"])
	assert.Equal(t, map[string]any{"runtime": "openclaw"}, h.calls[0].body["context"])
}

func TestSearchResultsNudgeFeedback(t *testing.T) {
	h := newHarness(t, "ask_env", map[string]string{
		"POST /v1/knowledge/search": `{"ok":true,"data":{"results":[{"id":"k_1"},{"id":"k_2"}],"agentHint":"2 credits left"}}`,
	})

	require.NoError(t, h.run("search", "vite"))
	assert.Contains(t, h.stderr.String(), "Result IDs: k_1, k_2")
	assert.Contains(t, h.stderr.String(), "\n2 credits left\n")
}

func TestRemoteFailureStillExitsZero(t *testing.T) {
	h := newHarness(t, "ask_env", map[string]string{
		"GET /v1/knowledge/k_missing": `{"ok":false,"error":"Entry not found"}`,
	})

	require.NoError(t, h.run("get", "k_missing"))
	assert.JSONEq(t, `{"ok":false,"error":"Entry not found"}`, h.stdout.String())
	assert.Empty(t, h.stderr.String())
}

func TestMalformedResponseIsWrapped(t *testing.T) {
	h := newHarness(t, "ask_env", map[string]string{
		"GET /v1/agents/me": `Bad Gateway`,
	})

	require.NoError(t, h.run("status"))
	assert.Equal(t, "{\n  \"ok\": false,\n  \"error\": \"Bad Gateway\"\n}\n", h.stdout.String())
}

func TestAutoRegistrationThenCommand(t *testing.T) {
	h := newHarness(t, "", map[string]string{
		"POST /v1/agents/register": `{"ok":true,"data":{"apiKey":"ask_new","agentId":"ag_new"}}`,
		"GET /v1/agents/me/credits": `{"ok":true,"data":{"balance":10}}`,
	})

	require.NoError(t, h.run("credits"))
	assert.Equal(t, []string{"POST /v1/agents/register", "GET /v1/agents/me/credits"}, h.routes())
	assert.Empty(t, h.calls[0].auth)
	assert.Equal(t, "openclaw", h.calls[0].body["host"])
	assert.Equal(t, "Bearer ask_new", h.calls[1].auth)

	rec, ok := credentials.NewStore(h.credPath).Load()
	require.True(t, ok)
	assert.Equal(t, credentials.Record{APIKey: "ask_new", AgentID: "ag_new"}, rec)
	assert.Contains(t, h.stderr.String(), "Registered as ag_new")
}

func TestStoredKeySkipsRegistration(t *testing.T) {
	h := newHarness(t, "", map[string]string{"GET /v1/agents/me": `{"ok":true}`})
	require.NoError(t, credentials.NewStore(h.credPath).Save(credentials.Record{APIKey: "ask_file", AgentID: "ag_1"}))

	require.NoError(t, h.run("status"))
	assert.Equal(t, []string{"GET /v1/agents/me"}, h.routes())
	assert.Equal(t, "Bearer ask_file", h.calls[0].auth)
}

func TestRegistrationFailureExitsWithoutConfig(t *testing.T) {
	h := newHarness(t, "", map[string]string{
		"POST /v1/agents/register": `{"ok":true,"data":{"agentId":"ag_1"}}`,
	})

	err := h.run("status")
	require.Error(t, err)
	assert.Equal(t, []string{"POST /v1/agents/register"}, h.routes())
	assert.Contains(t, h.stderr.String(), `Registration failed: {"ok":true,"data":{"agentId":"ag_1"}}`)
	assert.Empty(t, h.stdout.String())

	_, statErr := os.Stat(h.credPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTransportErrorIsReported(t *testing.T) {
	h := newHarness(t, "ask_env", nil)
	h.srv.Close()

	err := h.run("status")
	require.Error(t, err)
	assert.Contains(t, h.stderr.String(), "Error: GET /v1/agents/me: ")
}

func TestContributeWarnsOnBadEnvironment(t *testing.T) {
	h := newHarness(t, "ask_env", map[string]string{
		"POST /v1/knowledge/contribute": `{"ok":true,"data":{"id":"k_new"}}`,
	})

	require.NoError(t, h.run("contribute", "--title", "T", "--content", "C", "--tags", "Go,CLI",
		"--environment", "{oops", "--failed-approaches", "a", "b"))

	assert.Contains(t, h.stderr.String(), "Warning: --environment must be valid JSON, ignoring")
	assert.Contains(t, h.stderr.String(), "Tip: Adding --problem, --solution, --error-messages would make")

	require.Len(t, h.calls, 1)
	body := h.calls[0].body
	assert.Equal(t, []any{"go", "cli"}, body["tags"])
	assert.Equal(t, []any{"a", "b"}, body["failedApproaches"])
	assert.NotContains(t, body, "environment")
	assert.NotContains(t, body, "problem")
}

func TestFeedbackRequest(t *testing.T) {
	h := newHarness(t, "ask_env", map[string]string{
		"POST /v1/knowledge/k_abc/feedback": `{"ok":true}`,
	})

	require.NoError(t, h.run("feedback", "k_abc", "useful", "--notes", "worked"))
	require.Len(t, h.calls, 1)
	assert.Equal(t, map[string]any{"outcome": "useful", "notes": "worked"}, h.calls[0].body)
}

func TestSimpleCommands(t *testing.T) {
	tests := []struct {
		argv  []string
		route string
		body  map[string]any
		hint  string
	}{
		{[]string{"get", "k_1"}, "GET /v1/knowledge/k_1", nil, ""},
		{[]string{"retract", "k_1"}, "DELETE /v1/knowledge/k_1", nil, ""},
		{[]string{"status"}, "GET /v1/agents/me", nil, ""},
		{[]string{"credits"}, "GET /v1/agents/me/credits", nil, ""},
		{[]string{"claim", "dev@example.com"}, "POST /v1/agents/claim", map[string]any{"email": "dev@example.com"}, "Check your email"},
		{[]string{"verify", "123456"}, "POST /v1/agents/verify", map[string]any{"code": "123456"}, "Agent claimed!"},
	}
	for _, tt := range tests {
		t.Run(tt.argv[0], func(t *testing.T) {
			h := newHarness(t, "ask_env", map[string]string{tt.route: `{"ok":true}`})
			require.NoError(t, h.run(tt.argv...))

			require.Len(t, h.calls, 1)
			assert.Equal(t, tt.route, h.calls[0].route)
			assert.Equal(t, tt.body, h.calls[0].body)
			assert.Equal(t, "{\n  \"ok\": true\n}\n", h.stdout.String())
			if tt.hint != "" {
				assert.Contains(t, h.stderr.String(), tt.hint)
			} else {
				assert.Empty(t, h.stderr.String())
			}
		})
	}
}

func TestMissingPositionalArgs(t *testing.T) {
	for _, cmd := range []string{"get", "retract", "claim", "verify", "feedback"} {
		t.Run(cmd, func(t *testing.T) {
			h := newHarness(t, "ask_env", nil)
			require.Error(t, h.run(cmd))
			assert.Contains(t, h.stderr.String(), "Usage: prior "+cmd)
			assert.Empty(t, h.calls)
		})
	}
}

func TestVersionJSON(t *testing.T) {
	h := newHarness(t, "", nil)
	require.NoError(t, h.run("version", "--json"))

	var info map[string]string
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &info))
	assert.Equal(t, "dev", info["version"])
	assert.Equal(t, "prior-openclaw/0.2.5", info["userAgent"])
	assert.Equal(t, h.srv.URL, info["apiUrl"])
	assert.Empty(t, h.calls)
}
