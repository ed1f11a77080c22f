package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/internal/models"
	"rbconsole/pkg/testutil"
)

func TestUploadThenParseSingleFile(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	var uploaded []string
	fb.Handle(http.MethodPost, "/ingest/files", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, fh := range r.MultipartForm.File["files"] {
			uploaded = append(uploaded, fh.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"upload_ids": map[string]string{"aws_s3_inventory.csv": "1"}})
	})
	fb.JSON(http.MethodPost, "/ingest/parse", http.StatusOK, map[string]int{"ingested": 1})
	c, _ := newTestClient(t, fb)
	ctx := context.Background()

	ids, err := c.UploadFiles(ctx, []File{{Name: "aws_s3_inventory.csv", Content: strings.NewReader("bucket,region\nlogs,us-east-1\n")}})
	require.NoError(t, err)
	assert.Equal(t, "1", ids["aws_s3_inventory.csv"])
	assert.Equal(t, []string{"aws_s3_inventory.csv"}, uploaded)

	out, err := c.Parse(ctx, models.CloudAWS, ids["aws_s3_inventory.csv"])
	require.NoError(t, err)
	assert.Equal(t, 1, out.Ingested)

	reqs := fb.RequestsTo(http.MethodPost, "/ingest/parse")
	require.Len(t, reqs, 1)
	assert.Equal(t, "aws", reqs[0].Query.Get("cloud"))
	assert.Equal(t, []string{"1"}, reqs[0].Query["upload_id"])
}

func TestParseRepeatsUploadIDs(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/ingest/parse", http.StatusOK, map[string]int{"assets": 7})
	c, _ := newTestClient(t, fb)

	out, err := c.Parse(context.Background(), models.CloudAzure, "3", "4")
	require.NoError(t, err)
	assert.Equal(t, 7, out.Ingested)

	reqs := fb.RequestsTo(http.MethodPost, "/ingest/parse")
	require.Len(t, reqs, 1)
	assert.Equal(t, []string{"3", "4"}, reqs[0].Query["upload_id"])

	_, err = c.Parse(context.Background(), models.CloudAzure)
	require.Error(t, err)
	assert.Len(t, fb.RequestsTo(http.MethodPost, "/ingest/parse"), 1)
}

func TestStartLiveSendsCloudTwiceAndKeepsErrors(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodPost, "/ingest/live", http.StatusOK, map[string]any{
		"ingested": 5,
		"errors":   []string{"sa-1: permission denied"},
	})
	c, _ := newTestClient(t, fb)

	out, err := c.StartLive(context.Background(), models.CloudGCP)
	require.NoError(t, err)
	assert.Equal(t, models.IngestOutcome{Ingested: 5, Errors: []string{"sa-1: permission denied"}}, out)

	reqs := fb.RequestsTo(http.MethodPost, "/ingest/live")
	require.Len(t, reqs, 1)
	assert.Equal(t, "gcp", reqs[0].Query.Get("cloud"))
	assert.JSONEq(t, `{"cloud":"gcp"}`, string(reqs[0].Body))

	_, err = c.StartLive(context.Background(), models.CloudIaC)
	require.Error(t, err)
}

func TestValidatePermissionsAndLoadDemo(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/ingest/live/permissions", http.StatusOK, map[string]bool{"s3:ListAllMyBuckets": true, "ec2:DescribeInstances": false})
	fb.JSON(http.MethodPost, "/assets/load-demo", http.StatusOK, map[string]int{"ingested": 42})
	c, _ := newTestClient(t, fb)
	ctx := context.Background()

	report, err := c.ValidatePermissions(ctx, models.CloudAWS)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, []string{"ec2:DescribeInstances"}, report.Missing)

	out, err := c.LoadDemo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Ingested)
}

func TestUploadLicenseUsesFileField(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle(http.MethodPost, "/settings/license/upload", func(w http.ResponseWriter, r *http.Request) {
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "license.json", fh.Filename)
		assert.Equal(t, `{"org":"Acme"}`, string(data))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"org":"Acme","edition":"enterprise","valid":true,"seats":25}`))
	})
	c, _ := newTestClient(t, fb)

	lic, err := c.UploadLicense(context.Background(), File{Name: "license.json", Content: strings.NewReader(`{"org":"Acme"}`)})
	require.NoError(t, err)
	assert.Equal(t, "Acme", lic.Org)
	assert.True(t, lic.Valid)
}
