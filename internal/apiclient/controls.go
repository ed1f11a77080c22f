package apiclient

import (
	"context"
	"net/url"

	"rbconsole/internal/models"
)

// ControlFilter narrows GET /rules.
type ControlFilter struct {
	Search    string
	Severity  string
	Framework string
}

func (f ControlFilter) values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Severity != "" {
		v.Set("severity", f.Severity)
	}
	if f.Framework != "" {
		v.Set("framework", f.Framework)
	}
	return v
}

func (c *Client) ListControls(ctx context.Context, f ControlFilter) ([]models.Control, error) {
	cl := call{method: "GET", path: "/rules", query: f.values()}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return nil, err
	}
	page, err := normalizeList[models.Control](cl.endpoint(), raw)
	if err != nil {
		return nil, c.shape(ctx, err)
	}
	return page.Items, nil
}
