package apiclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/internal/listing"
	"rbconsole/internal/storage"
	"rbconsole/pkg/requestcontext"
	"rbconsole/pkg/testutil"
)

func newTestClient(t *testing.T, fb *testutil.FakeBackend, opts ...Option) (*Client, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryBackend())
	base := []Option{WithTokenStore(store), WithPolling(3, 0)}
	return New(fb.URL, append(base, opts...)...), store
}

func listingQuery() listing.Query {
	return listing.NewQuery(listing.Filter{})
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "analyst@example.test",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestClientAttachesBearerAndRequestID(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/results/summary", http.StatusOK, map[string]any{"by_status": map[string]int{"PASS": 3}})
	c, store := newTestClient(t, fb)
	require.NoError(t, store.SetToken(context.Background(), "opaque-token"))

	ctx := requestcontext.WithRequestID(context.Background(), "req-42")
	summary, err := c.ResultsSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ByStatus["PASS"])

	reqs := fb.RequestsTo(http.MethodGet, "/results/summary")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer opaque-token", reqs[0].Authorization)
	assert.Equal(t, "req-42", reqs[0].Header.Get("X-Request-ID"))
}

func TestClientUnauthorizedClearsTokenAndCallsHook(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/assets", http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})

	redirects := 0
	c, store := newTestClient(t, fb, WithOnUnauthorized(func(context.Context) { redirects++ }))
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "stale"))

	_, err := c.ListAssets(ctx, listingQuery())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Equal(t, 1, redirects)

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestClientExpiredTokenSkipsRoundTrip(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/vendors", http.StatusOK, []any{})

	redirects := 0
	c, store := newTestClient(t, fb, WithOnUnauthorized(func(context.Context) { redirects++ }))
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, signedToken(t, time.Now().Add(-time.Minute))))

	_, err := c.ListVendors(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, redirects)
	assert.Empty(t, fb.Requests())
}

func TestClientAPIErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{name: "fastapi string", body: `{"detail":"Version not found"}`, detail: "Version not found"},
		{name: "fastapi validation", body: `{"detail":[{"loc":["body","expires_at"],"msg":"expires_at must be today or later"},{"msg":"selector is empty"}]}`, detail: "expires_at must be today or later; selector is empty"},
		{name: "gateway envelope", body: `{"error":"bad_gateway","error_description":"upstream unavailable"}`, detail: "upstream unavailable"},
		{name: "plain text", body: "  boom \n", detail: "boom"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := testutil.NewFakeBackend(t)
			fb.Raw(http.MethodPost, "/rules/rollback", http.StatusNotFound, "application/json", []byte(tc.body))
			c, _ := newTestClient(t, fb)

			_, err := c.RollbackRulePack(context.Background(), "v9")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusNotFound, apiErr.Status)
			assert.Equal(t, tc.detail, apiErr.Detail)
			assert.Equal(t, "POST /rules/rollback", apiErr.Endpoint)
		})
	}
}

func TestExtractDetailTruncatesOnRuneBoundary(t *testing.T) {
	body := []byte("x" + strings.Repeat("é", 400))
	got := extractDetail(body)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "x"+strings.Repeat("é", 255)+"...", got)
}

func TestClientUnrecognizedShapeOnUndecodableBody(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Raw(http.MethodGet, "/settings/license", http.StatusOK, "text/html", []byte("<html>login</html>"))
	c, _ := newTestClient(t, fb)

	_, err := c.GetLicense(context.Background())
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestLoginStoresTokenAndSendsForm(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/auth/login", http.StatusOK, map[string]string{"access_token": "abc", "token_type": "bearer"})
	c, store := newTestClient(t, fb)
	ctx := context.Background()

	tok, err := c.Login(ctx, "admin@example.test", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)

	stored, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", stored)

	reqs := fb.RequestsTo(http.MethodPost, "/auth/login")
	require.Len(t, reqs, 1)
	assert.Equal(t, "application/x-www-form-urlencoded", reqs[0].ContentType)
	assert.Equal(t, "password=s3cret&username=admin%40example.test", string(reqs[0].Body))
	assert.Empty(t, reqs[0].Authorization)
}

func TestLoginFailureKeepsStoredToken(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/auth/login", http.StatusBadRequest, map[string]string{"detail": "Incorrect username or password"})
	c, store := newTestClient(t, fb)
	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "previous"))

	_, err := c.Login(ctx, "admin@example.test", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect username or password")

	stored, _ := store.Token(ctx)
	assert.Equal(t, "previous", stored)
}

func TestWhoAmI(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c, store := newTestClient(t, fb)
	ctx := context.Background()

	_, err := c.WhoAmI(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, store.SetToken(ctx, signedToken(t, time.Now().Add(time.Hour))))
	info, err := c.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "analyst@example.test", info.Subject)

	require.NoError(t, c.Logout(ctx))
	_, err = c.WhoAmI(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
}
