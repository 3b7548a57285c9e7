package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorPayload is the error object the API returns, either {"error": "..."}
// for lookups or {"errors": {...}} for rejected forms.
type ErrorPayload struct {
	Err    string          `json:"error,omitempty"`
	Errors json.RawMessage `json:"errors,omitempty"`
	Msg    string          `json:"message,omitempty"`
}

// Message flattens the payload into a single human-readable line.
func (p ErrorPayload) Message() string {
	var parts []string
	if s := strings.TrimSpace(p.Err); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, flattenErrors(p.Errors)...)
	if len(parts) == 0 {
		return strings.TrimSpace(p.Msg)
	}
	return strings.Join(parts, "; ")
}

func (p ErrorPayload) empty() bool {
	return strings.TrimSpace(p.Err) == "" && len(p.Errors) == 0
}

func flattenErrors(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs := flattenErrors(fields[k])
			if len(msgs) == 0 {
				continue
			}
			out = append(out, fmt.Sprintf("%s: %s", k, strings.Join(msgs, ", ")))
		}
		return out
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, item := range list {
			out = append(out, flattenErrors(item)...)
		}
		return out
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return []string{s}
		}
		return nil
	}
	return []string{string(raw)}
}

// ResponseError reports a response the API did not answer with success. It
// carries the raw response body, plus the parsed error object when the body
// was one.
type ResponseError struct {
	Method     string
	Path       string
	StatusCode int
	RequestID  string
	Body       []byte
	Payload    *ErrorPayload
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Payload != nil {
		if detail := e.Payload.Message(); detail != "" {
			msg += ": " + detail
		}
	}
	return msg
}

// Message returns the server-provided error text, or the status line when the
// body carried none.
func (e *ResponseError) Message() string {
	if e.Payload != nil {
		if detail := e.Payload.Message(); detail != "" {
			return detail
		}
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NotFound reports whether the API answered 404.
func (e *ResponseError) NotFound() bool {
	return e.StatusCode == 404
}

// AsResponseError unwraps err into a *ResponseError when it is one.
func AsResponseError(err error) (*ResponseError, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}

// parseErrorPayload returns the error object held in body, or nil when the
// body is not a JSON error object. The album form routes answer with a bare
// field map such as {"title": ["..."]}; that is read as the Errors map.
func parseErrorPayload(body []byte) *ErrorPayload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var payload ErrorPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil
	}
	if !payload.empty() || strings.TrimSpace(payload.Msg) != "" {
		return &payload
	}
	if len(flattenErrors(trimmed)) == 0 {
		return nil
	}
	return &ErrorPayload{Errors: json.RawMessage(trimmed)}
}
