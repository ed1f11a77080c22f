// Package apiclient is the typed client for the compliance API. It attaches
// the stored bearer token, turns 401s into a cleared session plus the
// OnUnauthorized hook, and normalizes loosely typed payloads.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	jwttoken "rbconsole/internal/jwt_token"
	"rbconsole/pkg/requestcontext"
)

const tracerName = "rbconsole/internal/apiclient"

// Default polling for evaluation runs.
const (
	DefaultPollAttempts = 30
	DefaultPollDelay    = 2 * time.Second
)

// TokenStore persists the access token between calls.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Client talks to one compliance API base URL.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenStore
	onUnauthorized func(ctx context.Context)
	logger         *slog.Logger
	tracer         trace.Tracer
	now            func() time.Time
	pollAttempts   uint
	pollDelay      time.Duration
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request, uploads included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithOnUnauthorized sets the hook invoked after any 401.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithCookieSession keeps backend session cookies across calls, for deployments
// that authenticate by cookie rather than bearer token.
func WithCookieSession() Option {
	return func(c *Client) {
		jar, _ := cookiejar.New(nil)
		c.http.Jar = jar
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPolling overrides the evaluation run polling schedule.
func WithPolling(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.pollAttempts = attempts
		}
		if delay >= 0 {
			c.pollDelay = delay
		}
	}
}

// New builds a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:       otel.Tracer(tracerName),
		now:          time.Now,
		pollAttempts: DefaultPollAttempts,
		pollDelay:    DefaultPollDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

type call struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	accept      string
	anonymous   bool
}

func (cl call) endpoint() string {
	return cl.method + " " + cl.path
}

// send performs the request and returns the response only for 2xx statuses.
// The caller owns the body.
func (c *Client) send(ctx context.Context, cl call) (*http.Response, error) {
	endpoint := cl.endpoint()
	ctx, span := c.tracer.Start(ctx, endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", cl.method),
			attribute.String("url.path", cl.path),
		),
	)
	defer span.End()

	var token string
	if !cl.anonymous {
		var err error
		if token, err = c.bearer(ctx); err != nil {
			span.SetStatus(codes.Error, "no usable token")
			return nil, err
		}
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	accept := cl.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		span.SetStatus(codes.Error, "unauthorized")
		c.unauthorized(ctx, endpoint)
		return nil, fmt.Errorf("%s: %w", endpoint, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		apiErr := newAPIError(endpoint, resp)
		resp.Body.Close()
		span.SetStatus(codes.Error, apiErr.Error())
		c.logger.DebugContext(ctx, "api error", "endpoint", endpoint, "status", apiErr.Status, "detail", apiErr.Detail)
		return nil, apiErr
	}
	return resp, nil
}

// raw performs cl and returns the whole body.
func (c *Client) raw(ctx context.Context, cl call) ([]byte, error) {
	resp, err := c.send(ctx, cl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", cl.endpoint(), err)
	}
	return body, nil
}

// decode performs cl and decodes a JSON body into out.
func (c *Client) decode(ctx context.Context, cl call, out any) error {
	body, err := c.raw(ctx, cl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return c.shape(ctx, shapeErr(cl.endpoint(), body))
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// bearer loads the stored token. A JWT whose exp has passed is treated as a
// 401 without a round trip.
func (c *Client) bearer(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return "", nil
	}
	if info, err := jwttoken.Inspect(token); err == nil && info.Expired(c.now()) {
		c.unauthorized(ctx, "token expired")
		return "", ErrUnauthorized
	}
	return token, nil
}

func (c *Client) unauthorized(ctx context.Context, endpoint string) {
	if c.tokens != nil {
		if err := c.tokens.ClearToken(ctx); err != nil {
			c.logger.WarnContext(ctx, "failed to clear token", "error", err)
		}
	}
	c.logger.WarnContext(ctx, "session rejected, login required", "endpoint", endpoint)
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}

// shape logs unrecognized payloads at WARN and passes err through.
func (c *Client) shape(ctx context.Context, err error) error {
	if errors.Is(err, ErrUnrecognizedShape) {
		c.logger.WarnContext(ctx, "unrecognized response shape", "error", err)
	}
	return err
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
