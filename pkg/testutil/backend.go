package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is a snapshot of one request received by a FakeBackend.
type RecordedRequest struct {
	Method        string
	Path          string
	RawPath       string
	Query         url.Values
	Header        http.Header
	Body          []byte
	ContentType   string
	Authorization string
}

// FakeBackend is an httptest server standing in for the compliance API.
// Routes are keyed by "METHOD /path"; unmatched requests get 404.
type FakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewFakeBackend starts a backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{routes: make(map[string]http.HandlerFunc)}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Close)
	return fb
}

// Handle registers a handler for method and path.
func (fb *FakeBackend) Handle(method, path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[method+" "+path] = h
}

// JSON registers a route that always answers with status and the JSON encoding of body.
func (fb *FakeBackend) JSON(method, path string, status int, body any) {
	fb.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

// Raw registers a route that answers with a fixed body and content type.
func (fb *FakeBackend) Raw(method, path string, status int, contentType string, body []byte) {
	fb.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
}

// Requests returns a copy of every request received so far.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest(nil), fb.requests...)
}

// RequestsTo returns the recorded requests for method and path.
func (fb *FakeBackend) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range fb.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	rec := RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawPath:       r.URL.EscapedPath(),
		Query:         r.URL.Query(),
		Header:        r.Header.Clone(),
		Body:          body,
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
	}

	fb.mu.Lock()
	fb.requests = append(fb.requests, rec)
	h, ok := fb.routes[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		http.Error(w, `{"detail":"Not Found"}`, http.StatusNotFound)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	h(w, r)
}
