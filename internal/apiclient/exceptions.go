package apiclient

import (
	"context"
	"net/url"

	"rbconsole/internal/models"
)

// ListExceptions returns waivers, only unexpired ones when activeOnly is set.
func (c *Client) ListExceptions(ctx context.Context, activeOnly bool) ([]models.Exception, error) {
	var q url.Values
	if activeOnly {
		q = url.Values{"active": {"true"}}
	}
	cl := call{method: "GET", path: "/exceptions", query: q}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return nil, err
	}
	page, err := normalizeList[models.Exception](cl.endpoint(), raw)
	if err != nil {
		return nil, c.shape(ctx, err)
	}
	return page.Items, nil
}

func (c *Client) CreateException(ctx context.Context, in models.ExceptionCreate) (models.Exception, error) {
	body, err := jsonBody(in)
	if err != nil {
		return models.Exception{}, err
	}
	var out models.Exception
	err = c.decode(ctx, call{method: "POST", path: "/exceptions", body: body, contentType: "application/json"}, &out)
	return out, err
}

func (c *Client) DeleteException(ctx context.Context, id string) error {
	_, err := c.raw(ctx, call{method: "DELETE", path: "/exceptions/" + escape(id)})
	return err
}
