package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/internal/audit"
	"rbconsole/internal/platform/metrics"
	"rbconsole/internal/platform/middleware"
	tu "rbconsole/pkg/testutil"
)

type fixture struct {
	backend *tu.FakeBackend
	router  http.Handler
	audit   *audit.MemoryStore
	metrics *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := tu.NewFakeBackend(t)
	store := audit.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	h, err := New(fb.URL,
		WithLogger(logger),
		WithMetrics(m),
		WithAuditor(audit.NewPublisher(store, audit.WithLogger(logger))),
		WithCookie("rb.jwt", false),
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	h.Register(r)
	return &fixture{backend: fb, router: r, audit: store, metrics: m}
}

func TestNewRejectsBadUpstream(t *testing.T) {
	_, err := New("ftp://example.test")
	require.Error(t, err)
	_, err = New("://nope")
	require.Error(t, err)
}

func TestForwardPassesStatusAndBodyVerbatim(t *testing.T) {
	f := newFixture(t)
	body := []byte(`{"detail":[{"msg":"expires_at must not be in the past"}]}`)
	f.backend.Raw(http.MethodPost, "/exceptions", http.StatusUnprocessableEntity, "application/json", body)

	req := tu.NewJSONRequest(t, http.MethodPost, "/api/exceptions", map[string]any{"control_id": "AWS-S3-001"})
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := tu.DoRequest(f.router, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, body, rr.Body.Bytes())

	reqs := f.backend.RequestsTo(http.MethodPost, "/exceptions")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer tok-1", reqs[0].Authorization)
	assert.JSONEq(t, `{"control_id":"AWS-S3-001"}`, string(reqs[0].Body))
	assert.NotEmpty(t, reqs[0].Header.Get("X-Request-ID"))
}

func TestForwardUnauthorizedIsNotRewritten(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodGet, "/assets", http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})

	rr := tu.DoRequest(f.router, tu.NewRequest(t, http.MethodGet, "/api/assets?cloud=aws&page=1&page_size=20"))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"Not authenticated"}`, rr.Body.String())

	reqs := f.backend.RequestsTo(http.MethodGet, "/assets")
	require.Len(t, reqs, 1)
	assert.Equal(t, "aws", reqs[0].Query.Get("cloud"))
	assert.Equal(t, "20", reqs[0].Query.Get("page_size"))
	assert.Empty(t, reqs[0].Authorization)
}

func TestForwardReadsTokenFromCookie(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodGet, "/rules", http.StatusOK, []any{})

	req := tu.NewRequest(t, http.MethodGet, "/api/rules?severity=HIGH")
	req.AddCookie(&http.Cookie{Name: "rb.jwt", Value: "cookie-token"})
	rr := tu.DoRequest(f.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bearer cookie-token", f.backend.RequestsTo(http.MethodGet, "/rules")[0].Authorization)
}

func TestForwardParseKeepsRepeatedUploadIDs(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodPost, "/ingest/parse", http.StatusOK, map[string]int{"ingested": 1})

	rr := tu.DoRequest(f.router, tu.NewRequest(t, http.MethodPost, "/api/ingest/parse?cloud=aws&upload_id=1&upload_id=2"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ingested":1}`, rr.Body.String())

	reqs := f.backend.RequestsTo(http.MethodPost, "/ingest/parse")
	require.Len(t, reqs, 1)
	assert.Equal(t, []string{"1", "2"}, reqs[0].Query["upload_id"])
}

func TestForwardMultipartUpload(t *testing.T) {
	f := newFixture(t)
	f.backend.Handle(http.MethodPost, "/ingest/files", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"upload_ids": map[string]string{files[0].Filename: "1"}})
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", "aws_s3_inventory.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("bucket,region\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ingest/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := tu.DoRequest(f.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"upload_ids":{"aws_s3_inventory.csv":"1"}}`, rr.Body.String())
}

func TestForwardExportKeepsDownloadHeaders(t *testing.T) {
	f := newFixture(t)
	f.backend.Handle(http.MethodGet, "/results/export.csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="raybeam_results_r1.csv"`)
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	})

	rr := tu.DoRequest(f.router, tu.NewRequest(t, http.MethodGet, "/api/results/export.csv?status=FAIL"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="raybeam_results_r1.csv"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n1,2\n", rr.Body.String())
}

func TestForwardResultIDWithColon(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodGet, "/results/AWS-S3-001:bucket-a", http.StatusOK, map[string]string{"control_id": "AWS-S3-001"})

	rr := tu.DoRequest(f.router, tu.NewRequest(t, http.MethodGet, "/api/results/AWS-S3-001:bucket-a"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestForwardKeepsEscapedSlashInID(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodGet, "/assets//subscriptions/s1/vm1", http.StatusOK, map[string]string{"asset_id": "/subscriptions/s1/vm1"})

	rr := tu.DoRequest(f.router, tu.NewRequest(t, http.MethodGet, "/api/assets/%2Fsubscriptions%2Fs1%2Fvm1?page=1"))
	require.Equal(t, http.StatusOK, rr.Code)

	reqs := f.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/assets/%2Fsubscriptions%2Fs1%2Fvm1", reqs[0].RawPath)
	assert.Equal(t, "1", reqs[0].Query.Get("page"))
}

func TestUpstreamDownReturns502Envelope(t *testing.T) {
	f := newFixture(t)
	f.backend.Close()

	rr := tu.DoRequest(f.router, tu.NewRequest(t, http.MethodPost, "/api/evaluate/run"))
	tu.AssertStatusAndError(t, rr, http.StatusBadGateway, "bad_gateway")
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.UpstreamErrors.WithLabelValues("/api/evaluate/run")))

	events := f.audit.List()
	require.Len(t, events, 1)
	assert.Equal(t, http.StatusBadGateway, events[0].Status)
}

func TestAuditOnlyForMutations(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodGet, "/vendors", http.StatusOK, []any{})
	f.backend.JSON(http.MethodDelete, "/exceptions/e1", http.StatusOK, map[string]bool{"deleted": true})

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "auditor@example.test"})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	get := tu.NewRequest(t, http.MethodGet, "/api/vendors")
	get.Header.Set("Authorization", "Bearer "+signed)
	tu.DoRequest(f.router, get)

	del := tu.NewRequest(t, http.MethodDelete, "/api/exceptions/e1")
	del.Header.Set("Authorization", "Bearer "+signed)
	del.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15")
	rr := tu.DoRequest(f.router, del)
	require.Equal(t, http.StatusOK, rr.Code)

	events := f.audit.List()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "exceptions_delete", e.Action)
	assert.Equal(t, "/api/exceptions/{id}", e.Route)
	assert.Equal(t, "auditor@example.test", e.Subject)
	assert.Equal(t, audit.CategoryOperations, e.Category)
	assert.Contains(t, e.Browser, "Safari")
	assert.NotEmpty(t, e.RequestID)
}

func TestLoginReshapesTokenAndSetsCookie(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodPost, "/auth/login", http.StatusOK, map[string]string{"access_token": "jwt-abc", "token_type": "bearer"})

	rr := tu.DoRequest(f.router, tu.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.test", "password": "pw"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"access_token":"jwt-abc","token_type":"bearer","expires_in":1800}`, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "rb.jwt", cookies[0].Name)
	assert.Equal(t, "jwt-abc", cookies[0].Value)
	assert.Equal(t, 1800, cookies[0].MaxAge)

	reqs := f.backend.RequestsTo(http.MethodPost, "/auth/login")
	require.Len(t, reqs, 1)
	assert.Equal(t, "application/x-www-form-urlencoded", reqs[0].ContentType)
	assert.Equal(t, "password=pw&username=admin%40example.test", string(reqs[0].Body))

	events := f.audit.List()
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
}

func TestLoginFailurePassesThrough(t *testing.T) {
	f := newFixture(t)
	f.backend.JSON(http.MethodPost, "/auth/login", http.StatusBadRequest, map[string]string{"detail": "Incorrect username or password"})

	rr := tu.DoRequest(f.router, tu.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.c", "password": "x"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, rr.Body.String())
	assert.Empty(t, rr.Result().Cookies())
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	rr := tu.DoRequest(f.router, req)
	tu.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")

	rr = tu.DoRequest(f.router, tu.NewJSONRequest(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.c"}))
	tu.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	assert.Empty(t, f.backend.Requests())
}
