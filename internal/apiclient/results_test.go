package apiclient

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbconsole/internal/listing"
	"rbconsole/pkg/testutil"
)

func TestListResultsSendsFilterAndPage(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/results", http.StatusOK, map[string]any{
		"items": []map[string]any{{"control_id": "AWS-S3-001", "asset_id": "bucket-a", "status": "FAIL"}},
		"page":  2,
	})
	c, _ := newTestClient(t, fb)

	q := listing.Query{Filter: listing.Filter{Status: "FAIL", Framework: "PCI_DSS"}, Page: 2}
	page, err := c.ListResults(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "AWS-S3-001:bucket-a", page.Items[0].ID())

	reqs := fb.RequestsTo(http.MethodGet, "/results")
	require.Len(t, reqs, 1)
	assert.Equal(t, "FAIL", reqs[0].Query.Get("status"))
	assert.Equal(t, "PCI_DSS", reqs[0].Query.Get("framework"))
	assert.Equal(t, "2", reqs[0].Query.Get("page"))
	assert.Equal(t, "20", reqs[0].Query.Get("page_size"))
	assert.Empty(t, reqs[0].Query.Get("severity"))
}

func TestGetResultEscapesCompositeID(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.JSON(http.MethodGet, "/results/AWS-S3-001:bucket-a", http.StatusOK, map[string]any{
		"control_id": "AWS-S3-001", "asset_id": "bucket-a", "status": "PASS",
		"evidence": map[string]bool{"encrypted": true},
	})
	c, _ := newTestClient(t, fb)

	detail, err := c.GetResult(context.Background(), "AWS-S3-001:bucket-a")
	require.NoError(t, err)
	assert.Equal(t, "bucket-a", detail.AssetID)
	assert.JSONEq(t, `{"encrypted":true}`, string(detail.Evidence))
}

func TestExportResultsStreamsBlob(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	csv := []byte("control_id,asset_id,status\nAWS-S3-001,bucket-a,FAIL\n")
	fb.Handle(http.MethodGet, "/results/export.csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="raybeam_results_r7.csv"`)
		_, _ = w.Write(csv)
	})
	c, _ := newTestClient(t, fb)

	var buf bytes.Buffer
	dl, err := c.ExportResults(context.Background(), FormatCSV, listing.Filter{Status: "FAIL"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, csv, buf.Bytes())
	assert.Equal(t, "raybeam_results_r7.csv", dl.Filename)
	assert.Equal(t, int64(len(csv)), dl.Size)

	reqs := fb.RequestsTo(http.MethodGet, "/results/export.csv")
	require.Len(t, reqs, 1)
	assert.Equal(t, "FAIL", reqs[0].Query.Get("status"))
	assert.Empty(t, reqs[0].Query.Get("page"))

	_, err = c.ExportResults(context.Background(), "xlsx", listing.Filter{}, &buf)
	require.Error(t, err)
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "fallback.json", attachmentName("", "fallback.json"))
	assert.Equal(t, "a.json", attachmentName(`attachment; filename="a.json"`, "fallback.json"))
	assert.Equal(t, "fallback.json", attachmentName(`attachment; filename="../etc/passwd"`, "fallback.json"))
	assert.Equal(t, "fallback.json", attachmentName(`;;;`, "fallback.json"))
}
