// Package proxy forwards console requests to the compliance API. Status codes
// and bodies come back unchanged; the gateway only adds the caller's bearer
// token and answers 502 when the upstream cannot be reached.
package proxy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rbconsole/internal/audit"
	"rbconsole/internal/platform/metrics"
	"rbconsole/internal/platform/middleware"
	dErrors "rbconsole/pkg/domain-errors"
	"rbconsole/pkg/platform/httputil"
	"rbconsole/pkg/requestcontext"
)

const tracerName = "rbconsole/internal/proxy"

// Auditor records mutating calls.
type Auditor interface {
	Emit(ctx context.Context, e audit.Event) error
}

// Request headers copied to the upstream request.
var forwardRequestHeaders = []string{"Content-Type", "Accept"}

// Response headers copied back to the browser.
var forwardResponseHeaders = []string{"Content-Type", "Content-Disposition", "Content-Length"}

// Handler forwards /api/* routes to one upstream base URL.
type Handler struct {
	upstream     *url.URL
	client       *http.Client
	cookieName   string
	cookieSecure bool
	logger       *slog.Logger
	metrics      *metrics.Metrics
	auditor      Auditor
	tracer       trace.Tracer
}

type Option func(*Handler)

func WithHTTPClient(c *http.Client) Option {
	return func(h *Handler) {
		if c != nil {
			h.client = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

func WithAuditor(a Auditor) Option {
	return func(h *Handler) { h.auditor = a }
}

// WithCookie names the cookie the token is read from and set on login.
func WithCookie(name string, secure bool) Option {
	return func(h *Handler) {
		if name != "" {
			h.cookieName = name
		}
		h.cookieSecure = secure
	}
}

// New builds a Handler for upstreamURL.
func New(upstreamURL string, opts ...Option) (*Handler, error) {
	u, err := url.Parse(strings.TrimRight(upstreamURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("upstream url %q must be http or https", upstreamURL)
	}
	h := &Handler{
		upstream:   u,
		client:     &http.Client{Timeout: 30 * time.Second},
		cookieName: "rb.jwt",
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Register mounts every proxied route under /api.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.BearerToken(h.cookieName))

	api.Post("/auth/login", h.handleLogin)

	api.Post("/ingest/files", h.forward)
	api.Post("/ingest/parse", h.forward)
	api.Get("/ingest/live/permissions", h.forward)
	api.Post("/ingest/live", h.forward)

	api.Post("/assets/load-demo", h.forward)
	api.Get("/assets", h.forward)
	api.Get("/assets/{id}", h.forward)

	api.Get("/results", h.forward)
	api.Get("/results/export.csv", h.forward)
	api.Get("/results/export.json", h.forward)
	api.Get("/results/summary", h.forward)
	api.Get("/results/{id}", h.forward)

	api.Get("/compliance/summary", h.forward)
	api.Get("/compliance/evidence-pack", h.forward)

	api.Get("/rules", h.forward)
	api.Get("/rules/status", h.forward)
	api.Post("/rules/upload", h.forward)
	api.Post("/rules/rollback", h.forward)

	api.Post("/evaluate/run", h.forward)
	api.Get("/evaluate/runs/latest", h.forward)
	api.Get("/evaluate/runs/{id}", h.forward)

	api.Get("/exceptions", h.forward)
	api.Post("/exceptions", h.forward)
	api.Delete("/exceptions/{id}", h.forward)

	api.Get("/vendors", h.forward)
	api.Post("/vendors", h.forward)
	api.Post("/vendors/bulk", h.forward)

	api.Get("/settings/license", h.forward)
	api.Post("/settings/license/upload", h.forward)
	api.Get("/settings/rulepacks", h.forward)

	r.Mount("/api", api)
}

// forward relays r to the same path without the /api prefix.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	route := routePattern(r)

	resp, err := h.roundTrip(ctx, route, r.Method, upstreamPath(r), r.URL.RawQuery, r.Body, r.ContentLength, r.Header)
	if err != nil {
		h.writeUpstreamError(w, r, route, err)
		return
	}
	defer resp.Body.Close()

	copyHeaders(w.Header(), resp.Header, forwardResponseHeaders)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.WarnContext(ctx, "response copy interrupted",
			"request_id", requestcontext.RequestID(ctx),
			"route", route,
			"error", err,
		)
	}
	h.audit(r, route, resp.StatusCode)
}

// roundTrip sends one upstream request inside a client span.
func (h *Handler) roundTrip(ctx context.Context, route, method, path, rawQuery string, body io.Reader, contentLength int64, in http.Header) (*http.Response, error) {
	ctx, span := h.tracer.Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", route),
		),
	)
	defer span.End()

	// path stays escaped so ids holding %2F reach the same upstream route
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return nil, err
	}
	target := *h.upstream
	target.Path = h.upstream.Path + decoded
	target.RawPath = h.upstream.EscapedPath() + path
	target.RawQuery = rawQuery

	if method == http.MethodGet || method == http.MethodDelete {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	copyHeaders(req.Header, in, forwardRequestHeaders)
	if contentLength > 0 && body != http.NoBody {
		req.ContentLength = contentLength
	}
	if token := requestcontext.BearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		req.Header.Set(middleware.HeaderRequestID, rid)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if h.metrics != nil {
		h.metrics.ObserveUpstream(route, start)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream unreachable")
		if h.metrics != nil {
			h.metrics.IncrementUpstreamError(route)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, resp.Status)
	}
	return resp, nil
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, route string, err error) {
	ctx := r.Context()
	h.logger.ErrorContext(ctx, "upstream request failed",
		"request_id", requestcontext.RequestID(ctx),
		"route", route,
		"error", err,
	)
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadGateway, "compliance API unreachable"))
	h.audit(r, route, http.StatusBadGateway)
}

func (h *Handler) audit(r *http.Request, route string, status int) {
	if h.auditor == nil || (r.Method != http.MethodPost && r.Method != http.MethodDelete) {
		return
	}
	ctx := r.Context()
	action := audit.ActionFor(r.Method, route)
	event := audit.Event{
		Category:  audit.CategoryFor(action),
		Timestamp: requestcontext.Now(ctx),
		Action:    action,
		Method:    r.Method,
		Route:     route,
		Status:    status,
		Subject:   middleware.GetSubject(ctx),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
	}.WithUserAgent(requestcontext.UserAgent(ctx))

	if err := h.auditor.Emit(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "audit emit failed",
			"request_id", event.RequestID,
			"action", action,
			"error", err,
		)
	}
}

// upstreamPath is the escaped request path without the /api prefix.
func upstreamPath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.EscapedPath(), "/api")
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

func copyHeaders(dst, src http.Header, keys []string) {
	for _, k := range keys {
		if v := src.Get(k); v != "" {
			dst.Set(k, v)
		}
	}
}
