package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"

	"rbconsole/internal/models"
)

// File is one upload: a name and its contents.
type File struct {
	Name    string
	Content io.Reader
}

// UploadFiles sends every file in one multipart request under the "files" field.
func (c *Client) UploadFiles(ctx context.Context, files []File) (models.UploadIDs, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("upload: no files")
	}
	body, contentType, err := multipartBody("files", files)
	if err != nil {
		return nil, err
	}
	cl := call{method: "POST", path: "/ingest/files", body: body, contentType: contentType}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return nil, err
	}
	ids, err := normalizeUploadIDs(cl.endpoint(), raw)
	if err != nil {
		return nil, c.shape(ctx, err)
	}
	return ids, nil
}

// Parse asks the backend to normalize previously uploaded files as cloud.
// Each id is sent as a repeated upload_id parameter.
func (c *Client) Parse(ctx context.Context, cloud models.Cloud, uploadIDs ...string) (models.IngestOutcome, error) {
	if len(uploadIDs) == 0 {
		return models.IngestOutcome{}, fmt.Errorf("parse %s: no upload ids", cloud)
	}
	q := url.Values{"cloud": {string(cloud)}}
	for _, id := range uploadIDs {
		q.Add("upload_id", id)
	}
	return c.ingest(ctx, call{method: "POST", path: "/ingest/parse", query: q})
}

// ValidatePermissions reports which live-ingestion permissions the backend's
// credentials for cloud have.
func (c *Client) ValidatePermissions(ctx context.Context, cloud models.Cloud) (models.PermissionReport, error) {
	cl := call{method: "GET", path: "/ingest/live/permissions", query: url.Values{"cloud": {string(cloud)}}}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return models.PermissionReport{}, err
	}
	report, err := normalizePermissions(cl.endpoint(), raw)
	if err != nil {
		return models.PermissionReport{}, c.shape(ctx, err)
	}
	return report, nil
}

// StartLive runs live ingestion. The cloud is sent both as a query parameter
// and as a JSON body since backend revisions read one or the other.
func (c *Client) StartLive(ctx context.Context, cloud models.Cloud) (models.IngestOutcome, error) {
	if !cloud.SupportsLive() {
		return models.IngestOutcome{}, fmt.Errorf("live ingestion does not support %q", cloud)
	}
	body, err := jsonBody(map[string]string{"cloud": string(cloud)})
	if err != nil {
		return models.IngestOutcome{}, err
	}
	return c.ingest(ctx, call{
		method:      "POST",
		path:        "/ingest/live",
		query:       url.Values{"cloud": {string(cloud)}},
		body:        body,
		contentType: "application/json",
	})
}

// LoadDemo loads the backend's demo dataset.
func (c *Client) LoadDemo(ctx context.Context) (models.IngestOutcome, error) {
	return c.ingest(ctx, call{method: "POST", path: "/assets/load-demo"})
}

func (c *Client) ingest(ctx context.Context, cl call) (models.IngestOutcome, error) {
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return models.IngestOutcome{}, err
	}
	out, err := normalizeIngest(cl.endpoint(), raw)
	if err != nil {
		return models.IngestOutcome{}, c.shape(ctx, err)
	}
	return out, nil
}

func multipartBody(field string, files []File) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
