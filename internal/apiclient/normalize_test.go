package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/internal/models"
)

func TestNormalizeIngest(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.IngestOutcome
	}{
		{name: "ingested", body: `{"ingested": 1}`, want: models.IngestOutcome{Ingested: 1}},
		{name: "assets", body: `{"assets": 12}`, want: models.IngestOutcome{Ingested: 12}},
		{name: "files list", body: `{"files": ["a.csv", "b.csv"]}`, want: models.IngestOutcome{Ingested: 2}},
		{name: "with errors", body: `{"ingested": 4, "errors": ["bucket-x: AccessDenied", {"asset": "vm-1"}]}`,
			want: models.IngestOutcome{Ingested: 4, Errors: []string{"bucket-x: AccessDenied", `{"asset":"vm-1"}`}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeIngest("POST /ingest/parse", []byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := normalizeIngest("POST /ingest/parse", []byte(`{"status": "ok", "count": 3}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
	assert.Contains(t, err.Error(), "[count, status]")

	_, err = normalizeIngest("POST /ingest/parse", []byte(`[1,2]`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
	assert.Contains(t, err.Error(), "array body")
}

func TestNormalizePermissions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.PermissionReport
	}{
		{name: "flat map", body: `{"s3:ListBuckets": true, "ec2:DescribeInstances": false, "iam:ListRoles": false}`,
			want: models.PermissionReport{Granted: []string{"s3:ListBuckets"}, Missing: []string{"ec2:DescribeInstances", "iam:ListRoles"}}},
		{name: "empty map", body: `{}`, want: models.PermissionReport{}},
		{name: "lists", body: `{"granted": ["a"], "missing": ["b"]}`,
			want: models.PermissionReport{Granted: []string{"a"}, Missing: []string{"b"}}},
		{name: "nested map", body: `{"permissions": {"storage.buckets.list": true}}`,
			want: models.PermissionReport{Granted: []string{"storage.buckets.list"}}},
		{name: "nested text", body: `{"permissions": "all required permissions present"}`,
			want: models.PermissionReport{Note: "all required permissions present"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizePermissions("GET /ingest/live/permissions", []byte(tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := normalizePermissions("GET /ingest/live/permissions", []byte(`{"ok": "yes"}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestNormalizeToken(t *testing.T) {
	tok, err := normalizeToken("POST /auth/login", []byte(`{"token": "t1", "redirect": "/dashboard"}`))
	require.NoError(t, err)
	assert.Equal(t, models.Token{AccessToken: "t1", TokenType: "bearer"}, tok)

	tok, err = normalizeToken("POST /auth/login", []byte(`{"access_token": "t2", "token_type": "Bearer", "expires_in": 1800}`))
	require.NoError(t, err)
	assert.Equal(t, models.Token{AccessToken: "t2", TokenType: "Bearer", ExpiresIn: 1800}, tok)

	_, err = normalizeToken("POST /auth/login", []byte(`{"ok": true}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestNormalizeCompliance(t *testing.T) {
	m, err := normalizeCompliance("GET /compliance/summary", []byte(`{"framework":"PCI_DSS","score":87,"requirements":[{"id":"1.1","title":"Firewall","status":"PASS","mapped_controls":["AWS-EC2-001"]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "PCI_DSS", m.Framework)
	assert.Equal(t, 87, m.Score)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, []string{"AWS-EC2-001"}, m.Requirements[0].MappedControls)
	assert.Nil(t, m.Totals)

	m, err = normalizeCompliance("GET /compliance/summary", []byte(`{"framework":"GDPR","requirements":[],"summary":{"total_requirements":4,"pass":2,"fail":1,"na":1,"waived":0,"score_percent":66.7},"run_id":"r1"}`))
	require.NoError(t, err)
	assert.Equal(t, 66, m.Score)
	require.NotNil(t, m.Totals)
	assert.Equal(t, 4, m.Totals.TotalRequirements)
	assert.Equal(t, "r1", m.RunID)

	m, err = normalizeCompliance("GET /compliance/summary", []byte(`{"framework":"SOC2","controls":[{"id":"CC6.1","status":"FAIL"}]}`))
	require.NoError(t, err)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "CC6.1", m.Requirements[0].ID)

	_, err = normalizeCompliance("GET /compliance/summary", []byte(`{"framework":"SOC2"}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestNormalizeList(t *testing.T) {
	page, err := normalizeList[models.Vendor]("GET /vendors", []byte(`[{"name":"Acme","risk":"low"}]`))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Acme", page.Items[0].Name)
	assert.Zero(t, page.TotalPages)

	page2, err := normalizeList[models.Result]("GET /results", []byte(`{"items":[],"page":2,"page_size":20,"total_items":21,"total_pages":2,"run_id":"r9"}`))
	require.NoError(t, err)
	assert.Empty(t, page2.Items)
	assert.NotNil(t, page2.Items)
	assert.Equal(t, 2, page2.Page)
	assert.Equal(t, "r9", page2.RunID)

	_, err = normalizeList[models.Result]("GET /results", []byte(`{"results":[]}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestNormalizeRun(t *testing.T) {
	run, err := normalizeRun("GET /evaluate/runs/latest", []byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, run)

	run, err = normalizeRun("GET /evaluate/runs/latest", []byte(`{"run_id":"r1","status":"completed","assets_count":5}`))
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.RunCompleted, run.Status)

	_, err = normalizeRun("GET /evaluate/runs/latest", []byte(`{"state":"done"}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestNormalizeRulePackStatus(t *testing.T) {
	st, err := normalizeRulePackStatus("GET /rules/status", []byte(`{"current":"v3","available":["v1.tar","v2.tar","v3.tar"]}`))
	require.NoError(t, err)
	assert.Equal(t, models.RulePackStatus{Current: "v3", Available: []string{"v1", "v2", "v3"}}, st)

	st, err = normalizeRulePackStatus("GET /settings/rulepacks", []byte(`{"current":null,"history":[]}`))
	require.NoError(t, err)
	assert.Equal(t, models.RulePackStatus{Available: []string{}}, st)

	_, err = normalizeRulePackStatus("GET /rules/status", []byte(`{"packs":[]}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}

func TestNormalizeUploadIDs(t *testing.T) {
	ids, err := normalizeUploadIDs("POST /ingest/files", []byte(`{"upload_ids":{"aws_s3_inventory.csv":"1"}}`))
	require.NoError(t, err)
	assert.Equal(t, models.UploadIDs{"aws_s3_inventory.csv": "1"}, ids)

	_, err = normalizeUploadIDs("POST /ingest/files", []byte(`{"ids":["1"]}`))
	require.ErrorIs(t, err, ErrUnrecognizedShape)
}
