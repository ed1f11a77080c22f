package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"rbconsole/internal/listing"
	"rbconsole/internal/models"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Download describes a blob written by an export call.
type Download struct {
	Filename    string
	ContentType string
	Size        int64
}

func (c *Client) ListResults(ctx context.Context, q listing.Query) (models.Page[models.Result], error) {
	cl := call{method: "GET", path: "/results", query: q.Values()}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return models.Page[models.Result]{}, err
	}
	page, err := normalizeList[models.Result](cl.endpoint(), raw)
	if err != nil {
		return page, c.shape(ctx, err)
	}
	return page, nil
}

// GetResult fetches one result by its control_id:asset_id key.
func (c *Client) GetResult(ctx context.Context, id string) (models.ResultDetail, error) {
	var out models.ResultDetail
	err := c.decode(ctx, call{method: "GET", path: "/results/" + escape(id)}, &out)
	return out, err
}

// ResultsSummary counts results of the latest run.
func (c *Client) ResultsSummary(ctx context.Context) (models.ResultsSummary, error) {
	var out models.ResultsSummary
	err := c.decode(ctx, call{method: "GET", path: "/results/summary"}, &out)
	return out, err
}

// ExportResults streams the export for filter to w. Paging parameters are not
// sent: the export covers every matching result.
func (c *Client) ExportResults(ctx context.Context, format string, filter listing.Filter, w io.Writer) (Download, error) {
	if format != FormatCSV && format != FormatJSON {
		return Download{}, fmt.Errorf("unsupported export format %q", format)
	}
	return c.download(ctx, call{
		method: "GET",
		path:   "/results/export." + format,
		query:  filter.Values(),
		accept: "*/*",
	}, "results."+format, w)
}

func (c *Client) download(ctx context.Context, cl call, fallbackName string, w io.Writer) (Download, error) {
	resp, err := c.send(ctx, cl)
	if err != nil {
		return Download{}, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return Download{}, fmt.Errorf("%s: write download: %w", cl.endpoint(), err)
	}
	return Download{
		Filename:    attachmentName(resp.Header.Get("Content-Disposition"), fallbackName),
		ContentType: resp.Header.Get("Content-Type"),
		Size:        n,
	}, nil
}

func attachmentName(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	name := strings.TrimSpace(params["filename"])
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fallback
	}
	return name
}
