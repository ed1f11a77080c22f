package audit

import (
	"strings"
	"time"

	"github.com/mssola/useragent"
)

// Category classifies an audit event for routing and retention.
type Category string

const (
	// CategorySecurity covers authentication attempts.
	CategorySecurity Category = "security"
	// CategoryOperations covers every other state-changing console action.
	CategoryOperations Category = "operations"
)

// Event records one state-changing request that passed through the gateway.
// It is serialized as-is onto the audit topic.
type Event struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Method    string    `json:"method"`
	Route     string    `json:"route"`
	Status    int       `json:"status"`
	Subject   string    `json:"subject,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Browser   string    `json:"browser,omitempty"`
	OS        string    `json:"os,omitempty"`
	Bot       bool      `json:"bot,omitempty"`
}

// Outcome is "success" for 2xx/3xx upstream statuses and "failure" otherwise.
func (e Event) Outcome() string {
	if e.Status >= 200 && e.Status < 400 {
		return "success"
	}
	return "failure"
}

// ActionFor names the action behind a proxied route pattern, e.g.
// POST /api/rules/rollback -> rules_rollback, DELETE /api/exceptions/{id} ->
// exceptions_delete.
func ActionFor(method, route string) string {
	route = strings.TrimPrefix(route, "/api")
	var parts []string
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		parts = append(parts, strings.NewReplacer("-", "_", ".", "_").Replace(seg))
	}
	if method == "DELETE" {
		parts = append(parts, "delete")
	}
	if len(parts) == 0 {
		return strings.ToLower(method)
	}
	return strings.Join(parts, "_")
}

// CategoryFor puts login attempts in the security stream.
func CategoryFor(action string) Category {
	if strings.HasPrefix(action, "auth_") {
		return CategorySecurity
	}
	return CategoryOperations
}

// WithUserAgent fills Browser, OS and Bot from a User-Agent header.
func (e Event) WithUserAgent(header string) Event {
	if header == "" {
		return e
	}
	ua := useragent.New(header)
	name, version := ua.Browser()
	if name != "" {
		e.Browser = strings.TrimSpace(name + " " + version)
	}
	e.OS = ua.OS()
	e.Bot = ua.Bot()
	return e
}
