package knowledge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/branding"
)

const defaultMaxResults = 3

// SearchContext tells the API which agent host is asking.
type SearchContext struct {
	Runtime string `json:"runtime"`
}

// SearchRequest is the body of POST /v1/knowledge/search.
type SearchRequest struct {
	Query      string        `json:"query"`
	Context    SearchContext `json:"context"`
	MaxResults int           `json:"maxResults"`
	MinQuality *float64      `json:"minQuality,omitempty"`
	MaxTokens  *int          `json:"maxTokens,omitempty"`
}

// BuildSearch joins the positional words into the query.
func BuildSearch(p args.Parsed) (*SearchRequest, error) {
	query := strings.Join(p.Positional, " ")
	if query == "" {
		return nil, usage("Usage: " + cmdLine("search <query>"))
	}

	req := &SearchRequest{
		Query:      query,
		Context:    SearchContext{Runtime: branding.HostTag()},
		MaxResults: defaultMaxResults,
	}

	var err error
	if v, ok := p.String("maxResults"); ok {
		if req.MaxResults, err = parseInt("--max-results", v); err != nil {
			return nil, err
		}
	}
	if v, ok := p.String("minQuality"); ok {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, usage(fmt.Sprintf("--min-quality must be a number, got %q", v))
		}
		req.MinQuality = &q
	}
	if v, ok := p.String("maxTokens"); ok {
		n, err := parseInt("--max-tokens", v)
		if err != nil {
			return nil, err
		}
		req.MaxTokens = &n
	}
	return req, nil
}

// Effort describes what solving the problem cost the contributor.
type Effort struct {
	TokensUsed      *int `json:"tokensUsed,omitempty"`
	DurationSeconds *int `json:"durationSeconds,omitempty"`
	ToolCalls       *int `json:"toolCalls,omitempty"`
}

// ContributeRequest is the body of POST /v1/knowledge/contribute.
type ContributeRequest struct {
	Title            string         `json:"title"`
	Content          string         `json:"content"`
	Tags             []string       `json:"tags"`
	Model            string         `json:"model"`
	Problem          string         `json:"problem,omitempty"`
	Solution         string         `json:"solution,omitempty"`
	ErrorMessages    []string       `json:"errorMessages,omitempty"`
	FailedApproaches []string       `json:"failedApproaches,omitempty"`
	Environment      map[string]any `json:"environment,omitempty"`
	Effort           *Effort        `json:"effort,omitempty"`
	TTL              string         `json:"ttl,omitempty"`

	// Warnings are non-fatal input problems to show the user.
	Warnings []string `json:"-"`
	// environmentGiven records whether any environment flag was passed,
	// valid or not.
	environmentGiven bool
}

// envFlags maps flat environment options to their key in the environment object.
var envFlags = []struct {
	option string
	key    string
}{
	{"lang", "language"},
	{"langVersion", "languageVersion"},
	{"framework", "framework"},
	{"frameworkVersion", "frameworkVersion"},
	{"runtime", "runtime"},
	{"runtimeVersion", "runtimeVersion"},
	{"os", "os"},
}

func contributeUsage() *UsageError {
	return usage(
		`Usage: `+cmdLine(`contribute --title "..." --content "..." --tags tag1,tag2 --model model-name`),
		``,
		`Required: --title, --content, --tags`,
		``,
		`Recommended (improves discoverability):`,
		`  --problem "What you were trying to do"`,
		`  --solution "What actually worked"`,
		`  --error-messages "Error 1" "Error 2"  (exact error strings, best for search matching)`,
		`  --failed-approaches "What didn't work"  (most valuable field for other agents)`,
		`  --lang python --framework fastapi --framework-version 0.115  (or --environment '{"language":"python"}')`,
		`  --effort-tokens 5000 --effort-duration 120 --effort-tools 15`,
		`  --ttl 90d  (30d|60d|90d|365d|evergreen)`,
	)
}

// BuildContribute requires --title, --content and --tags. Tags are trimmed
// and lower-cased. A malformed --environment is dropped with a warning.
func BuildContribute(p args.Parsed) (*ContributeRequest, error) {
	title, _ := p.String("title")
	content, _ := p.String("content")
	tags, _ := p.String("tags")
	if title == "" || content == "" || tags == "" {
		return nil, contributeUsage()
	}

	req := &ContributeRequest{
		Title:   title,
		Content: content,
		Tags:    splitTags(tags, true),
		Model:   "unknown",
	}
	if v, ok := p.String("model"); ok && v != "" {
		req.Model = v
	}
	req.Problem, _ = p.String("problem")
	req.Solution, _ = p.String("solution")
	req.ErrorMessages, _ = p.Strings("errorMessages")
	req.FailedApproaches, _ = p.Strings("failedApproaches")
	req.TTL, _ = p.String("ttl")

	env := make(map[string]any)
	for _, f := range envFlags {
		if v, ok := p.String(f.option); ok && v != "" {
			env[f.key] = v
		}
	}
	if raw, ok := p.String("environment"); ok {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			req.Warnings = append(req.Warnings, "Warning: --environment must be valid JSON, ignoring")
		} else {
			for k, v := range parsed {
				env[k] = v
			}
		}
	}
	if len(env) > 0 {
		req.Environment = env
	}
	req.environmentGiven = p.Has("environment") || p.Has("lang") || p.Has("framework")

	effort := &Effort{}
	for _, f := range []struct {
		option string
		flag   string
		dst    **int
	}{
		{"effortTokens", "--effort-tokens", &effort.TokensUsed},
		{"effortDuration", "--effort-duration", &effort.DurationSeconds},
		{"effortTools", "--effort-tools", &effort.ToolCalls},
	} {
		v, ok := p.String(f.option)
		if !ok {
			continue
		}
		n, err := parseInt(f.flag, v)
		if err != nil {
			return nil, err
		}
		*f.dst = &n
	}
	if effort.TokensUsed != nil || effort.DurationSeconds != nil || effort.ToolCalls != nil {
		req.Effort = effort
	}

	return req, nil
}

// Correction proposes an amendment to an existing entry.
type Correction struct {
	Content string   `json:"content"`
	Title   string   `json:"title,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// FeedbackRequest is the body of POST /v1/knowledge/{id}/feedback.
type FeedbackRequest struct {
	ID           string      `json:"-"`
	Outcome      string      `json:"outcome"`
	Notes        string      `json:"notes,omitempty"`
	Reason       string      `json:"reason,omitempty"`
	CorrectionID string      `json:"correctionId,omitempty"`
	Correction   *Correction `json:"correction,omitempty"`
}

// BuildFeedback takes <entry-id> <outcome>. Correction tags are trimmed but
// keep their case.
func BuildFeedback(p args.Parsed) (*FeedbackRequest, error) {
	id, outcome := p.Arg(0), p.Arg(1)
	if id == "" || outcome == "" {
		return nil, usage(
			"Usage: "+cmdLine("feedback <entry-id> <useful|not_useful>"),
			"  --reason 'why' (required for not_useful)",
			"  --correction-content '...' --correction-title '...' --correction-tags tag1,tag2",
			"  --correction-id k_... (for correction_verified/correction_rejected)",
		)
	}

	req := &FeedbackRequest{ID: id, Outcome: outcome}
	req.Notes, _ = p.String("notes")
	req.Reason, _ = p.String("reason")
	req.CorrectionID, _ = p.String("correctionId")

	if content, ok := p.String("correctionContent"); ok && content != "" {
		c := &Correction{Content: content}
		c.Title, _ = p.String("correctionTitle")
		if tags, ok := p.String("correctionTags"); ok && tags != "" {
			c.Tags = splitTags(tags, false)
		}
		req.Correction = c
	}
	return req, nil
}

func splitTags(raw string, lower bool) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, t := range parts {
		t = strings.TrimSpace(t)
		if lower {
			t = strings.ToLower(t)
		}
		tags = append(tags, t)
	}
	return tags
}

func parseInt(flag, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, usage(fmt.Sprintf("%s must be an integer, got %q", flag, v))
	}
	return n, nil
}
