//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cg3io/prior/internal/cli"
)

// testEnv holds an isolated home directory and a fake knowledge base API.
type testEnv struct {
	HomeDir    string // HOME for the CLI; credentials land in HomeDir/.prior/
	ConfigPath string
	API        *fakeAPI
}

// setupTestEnv points HOME and PRIOR_BASE_URL at sandboxed values so no test
// touches the real ~/.prior or the network. The env vars are restored after
// the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		API:     newFakeAPI(t),
	}
	env.ConfigPath = filepath.Join(env.HomeDir, ".prior", "config.json")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PRIOR_BASE_URL", env.API.URL())
	t.Setenv("PRIOR_API_KEY", "")
	t.Setenv("PRIOR_LOG_LEVEL", "")

	return env
}

// result captures one CLI invocation.
type result struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the CLI in-process.
func runCLI(t *testing.T, argv ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Run(context.Background(), argv, &stdout, &stderr)
	return result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// request is one call seen by the fake API.
type request struct {
	Route string
	Auth  string
	Agent string
	Body  map[string]any
}

// fakeAPI is a minimal stand-in for the knowledge base. Routes are keyed by
// "METHOD /path".
type fakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	replies  map[string]string
	requests []request
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{replies: make(map[string]string)}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.EscapedPath()
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(data, &body)

		f.mu.Lock()
		f.requests = append(f.requests, request{
			Route: route,
			Auth:  r.Header.Get("Authorization"),
			Agent: r.Header.Get("User-Agent"),
			Body:  body,
		})
		reply, ok := f.replies[route]
		f.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			reply = `{"ok":false,"error":"not found"}`
		}
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) URL() string { return f.srv.URL }

// Reply sets the body returned for route.
func (f *fakeAPI) Reply(route, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[route] = body
}

// Requests returns a copy of the calls seen so far.
func (f *fakeAPI) Requests() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
