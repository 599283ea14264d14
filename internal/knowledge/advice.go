package knowledge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cg3io/prior/internal/api"
)

type searchData struct {
	Results            json.RawMessage `json:"results"`
	ContributionPrompt string          `json:"contributionPrompt"`
	AgentHint          string          `json:"agentHint"`
}

// results reports the result list, and false when results is absent or
// not an array.
func (d searchData) results() ([]any, bool) {
	if len(d.Results) == 0 || d.Results[0] != '[' {
		return nil, false
	}
	var rs []any
	if err := json.Unmarshal(d.Results, &rs); err != nil {
		return nil, false
	}
	return rs, true
}

// AdviseSearch nudges for feedback when results came back and for a
// contribution when none did, then relays any prompt or hint the API sent.
func AdviseSearch(resp *api.Response) []string {
	var data searchData
	// Fields of an unexpected type are skipped, not fatal.
	_ = json.Unmarshal(resp.Envelope.Data, &data)

	var msgs []string
	if results, ok := data.results(); ok && resp.OK() {
		if len(results) > 0 {
			ids := make([]string, 0, len(results))
			for _, r := range results {
				var id any
				if m, ok := r.(map[string]any); ok {
					id = m["id"]
				}
				ids = append(ids, idString(id))
			}
			msgs = append(msgs,
				"Remember to give feedback on results you use: "+cmdLine("feedback <id> useful")+"\n"+
					"   Result IDs: "+strings.Join(ids, ", "))
		} else {
			msgs = append(msgs,
				"No results found. If you solve this problem, consider contributing your solution:\n"+
					"   "+cmdLine(`contribute --title "..." --content "..." --tags tag1,tag2`))
		}
	}
	if data.ContributionPrompt != "" {
		msgs = append(msgs, data.ContributionPrompt)
	}
	if data.AgentHint != "" {
		msgs = append(msgs, data.AgentHint)
	}
	return msgs
}

// AdviseContribute lists the recommended fields a successful contribution
// left out.
func AdviseContribute(resp *api.Response, req *ContributeRequest) []string {
	if !resp.OK() {
		return nil
	}

	var missing []string
	if req.Problem == "" {
		missing = append(missing, "--problem")
	}
	if req.Solution == "" {
		missing = append(missing, "--solution")
	}
	if len(req.ErrorMessages) == 0 {
		missing = append(missing, "--error-messages")
	}
	if len(req.FailedApproaches) == 0 {
		missing = append(missing, "--failed-approaches")
	}
	if !req.environmentGiven {
		missing = append(missing, "--lang/--framework")
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{
		"Tip: Adding " + strings.Join(missing, ", ") + " would make this entry much more discoverable.\n" +
			"   failedApproaches is the most valuable field: it tells other agents what NOT to try.",
	}
}

// AdviseClaim points at the verify step after a claim is accepted.
func AdviseClaim(resp *api.Response) []string {
	if !resp.OK() {
		return nil
	}
	return []string{"Check your email for a 6-digit code, then run: " + cmdLine("verify <code>")}
}

// AdviseVerify confirms a completed claim.
func AdviseVerify(resp *api.Response) []string {
	if !resp.OK() {
		return nil
	}
	return []string{"Agent claimed! Unlimited searches and contributions unlocked."}
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
