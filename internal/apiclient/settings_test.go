package apiclient

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/internal/models"
	"rbconsole/pkg/testutil"
)

func TestRulePackStatusFallsBackToSettings(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/settings/rulepacks", http.StatusOK, map[string]any{"current": "2024.06", "history": []string{"2024.05.tar", "2024.06.tar"}})
	c, _ := newTestClient(t, fb)

	st, err := c.RulePackStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024.06", st.Current)
	assert.True(t, st.HasVersion("2024.05"))
	assert.Len(t, fb.RequestsTo(http.MethodGet, "/rules/status"), 1)
}

func TestRulePackStatusPrefersRulesStatus(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/rules/status", http.StatusOK, map[string]any{"current": "v2", "available": []string{"v1", "v2"}})
	c, _ := newTestClient(t, fb)

	st, err := c.RulePackStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RulePackStatus{Current: "v2", Available: []string{"v1", "v2"}}, st)
	assert.Empty(t, fb.RequestsTo(http.MethodGet, "/settings/rulepacks"))
}

func TestUploadRulePackSendsApplyFlag(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/rules/upload", http.StatusOK, map[string]any{"version": "v3", "control_count": 120, "frameworks": []string{"CIS"}})
	c, _ := newTestClient(t, fb)

	change, err := c.UploadRulePack(context.Background(), File{Name: "pack.tar", Content: strings.NewReader("tar")}, true)
	require.NoError(t, err)
	assert.Equal(t, "v3", change.Version)
	assert.Equal(t, 120, change.ControlCount)

	reqs := fb.RequestsTo(http.MethodPost, "/rules/upload")
	require.Len(t, reqs, 1)
	assert.Equal(t, "true", reqs[0].Query.Get("apply"))
	assert.True(t, strings.HasPrefix(reqs[0].ContentType, "multipart/form-data"))
}

func TestRollbackUnknownVersion(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/rules/rollback", http.StatusNotFound, map[string]string{"detail": "Version not found"})
	c, _ := newTestClient(t, fb)

	_, err := c.RollbackRulePack(context.Background(), "v0")
	require.ErrorIs(t, err, ErrUnknownVersion)
}

func TestExceptionsAndVendors(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/exceptions", http.StatusOK, []map[string]any{{"id": "e1", "control_id": "AWS-S3-001", "selector": map[string]string{"env": "dev"}}})
	fb.JSON(http.MethodDelete, "/exceptions/e1", http.StatusOK, map[string]bool{"deleted": true})
	fb.JSON(http.MethodPost, "/vendors", http.StatusOK, map[string]any{"id": "v1", "name": "Stripe", "risk": "medium"})
	fb.JSON(http.MethodPost, "/vendors/bulk", http.StatusOK, []map[string]any{{"id": "v2", "name": "Twilio", "risk": "medium"}})
	c, _ := newTestClient(t, fb)
	ctx := context.Background()

	list, err := c.ListExceptions(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dev", list[0].Selector["env"])
	assert.Equal(t, "true", fb.RequestsTo(http.MethodGet, "/exceptions")[0].Query.Get("active"))

	require.NoError(t, c.DeleteException(ctx, "e1"))

	v, err := c.CreateVendor(ctx, models.Vendor{Name: "Stripe"})
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID)
	assert.JSONEq(t, `{"name":"Stripe","risk":"medium","dpa_signed":false,"pii":false}`, string(fb.RequestsTo(http.MethodPost, "/vendors")[0].Body))

	created, err := c.BulkCreateVendors(ctx, []models.Vendor{{Name: "Twilio"}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.JSONEq(t, `{"vendors":[{"name":"Twilio","risk":"medium","dpa_signed":false,"pii":false}]}`, string(fb.RequestsTo(http.MethodPost, "/vendors/bulk")[0].Body))
}
