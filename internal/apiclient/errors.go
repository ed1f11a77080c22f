package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"rbconsole/pkg/platform/sentinel"
)

var (
	// ErrUnauthorized is returned after a 401 or a locally expired token.
	// The stored token is already cleared when callers see it.
	ErrUnauthorized = sentinel.ErrUnauthorized

	// ErrUnrecognizedShape is returned when a response matches none of the
	// known payload variants for its endpoint.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")

	// ErrPollExhausted is returned with the last seen run when polling gave up
	// before the run reached a terminal status.
	ErrPollExhausted = errors.New("run still in progress after polling")
)

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status   int
	Endpoint string
	Detail   string
}

func (e *APIError) Error() string {
	text := http.StatusText(e.Status)
	if e.Detail == "" {
		return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, text)
	}
	return fmt.Sprintf("%s: %d %s: %s", e.Endpoint, e.Status, text, e.Detail)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	return 0
}

const maxDetailBytes = 64 << 10

func newAPIError(endpoint string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes))
	return &APIError{Status: resp.StatusCode, Endpoint: endpoint, Detail: extractDetail(body)}
}

// extractDetail understands FastAPI's {"detail": ...} (string or validation
// list) and the gateway's {"error","error_description"} envelope, falling back
// to the trimmed body text.
// maxDetail caps, in bytes, how much of an unstructured error body is kept.
const maxDetail = 512

func extractDetail(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		if raw, ok := obj["detail"]; ok {
			var s string
			if json.Unmarshal(raw, &s) == nil {
				return s
			}
			var items []struct {
				Loc []any  `json:"loc"`
				Msg string `json:"msg"`
			}
			if json.Unmarshal(raw, &items) == nil && len(items) > 0 {
				msgs := make([]string, 0, len(items))
				for _, it := range items {
					msgs = append(msgs, it.Msg)
				}
				return strings.Join(msgs, "; ")
			}
			return string(raw)
		}
		var desc, code string
		_ = json.Unmarshal(obj["error_description"], &desc)
		_ = json.Unmarshal(obj["error"], &code)
		if desc != "" {
			return desc
		}
		if code != "" {
			return code
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxDetail {
		cut := maxDetail
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}
