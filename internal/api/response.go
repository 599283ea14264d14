package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags how a response body was interpreted.
type Kind int

const (
	// KindOK means the body parsed as JSON and is kept verbatim.
	KindOK Kind = iota
	// KindMalformed means the body was not JSON; it is surfaced as an error string.
	KindMalformed
)

// Envelope is the {ok, data, error} wrapper the API returns.
type Envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

// Response is the tagged result of a request.
type Response struct {
	Kind Kind
	// Raw is the response body exactly as received.
	Raw []byte
	// Envelope is the decoded view of Raw. It is the zero value when the body
	// is malformed or is JSON of a different shape.
	Envelope Envelope
}

type malformedBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ParseResponse classifies a response body and decodes its envelope.
func ParseResponse(body []byte) *Response {
	if !json.Valid(body) {
		return &Response{Kind: KindMalformed, Raw: body}
	}
	r := &Response{Kind: KindOK, Raw: body}
	// Partial decodes are fine: a non-object body or an oddly typed field
	// just leaves the view empty.
	_ = json.Unmarshal(body, &r.Envelope)
	return r
}

// OK reports whether the remote call succeeded by its own account.
func (r *Response) OK() bool {
	return r.Kind == KindOK && r.Envelope.OK
}

// DecodeData unmarshals the envelope's data field into v.
func (r *Response) DecodeData(v any) error {
	if len(r.Envelope.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(r.Envelope.Data, v)
}

// Indent renders the response with two-space indentation. Malformed bodies
// render as {"ok": false, "error": "<body>"}.
func (r *Response) Indent() ([]byte, error) {
	if r.Kind == KindMalformed {
		return encodeMalformed(string(r.Raw), "  ")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(r.Raw), "", "  "); err != nil {
		return nil, fmt.Errorf("indenting response: %w", err)
	}
	return buf.Bytes(), nil
}

// Compact renders the response on a single line.
func (r *Response) Compact() string {
	if r.Kind == KindMalformed {
		out, err := encodeMalformed(string(r.Raw), "")
		if err != nil {
			return string(r.Raw)
		}
		return string(out)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.Raw); err != nil {
		return string(r.Raw)
	}
	return buf.String()
}

func encodeMalformed(raw, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(malformedBody{OK: false, Error: raw}); err != nil {
		return nil, fmt.Errorf("encoding malformed response: %w", err)
	}
	return []byte(strings.TrimRight(buf.String(), "\n")), nil
}
