package apiclient

import (
	"context"

	"rbconsole/internal/models"
)

func (c *Client) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	cl := call{method: "GET", path: "/vendors"}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return nil, err
	}
	page, err := normalizeList[models.Vendor](cl.endpoint(), raw)
	if err != nil {
		return nil, c.shape(ctx, err)
	}
	return page.Items, nil
}

// CreateVendor adds one vendor. An unset risk defaults to medium.
func (c *Client) CreateVendor(ctx context.Context, v models.Vendor) (models.Vendor, error) {
	if v.Risk == "" {
		v.Risk = models.RiskMedium
	}
	body, err := jsonBody(v)
	if err != nil {
		return models.Vendor{}, err
	}
	var out models.Vendor
	err = c.decode(ctx, call{method: "POST", path: "/vendors", body: body, contentType: "application/json"}, &out)
	return out, err
}

// BulkCreateVendors posts {"vendors": [...]} and returns what the backend created.
func (c *Client) BulkCreateVendors(ctx context.Context, vendors []models.Vendor) ([]models.Vendor, error) {
	in := make([]models.Vendor, len(vendors))
	for i, v := range vendors {
		if v.Risk == "" {
			v.Risk = models.RiskMedium
		}
		in[i] = v
	}
	body, err := jsonBody(map[string][]models.Vendor{"vendors": in})
	if err != nil {
		return nil, err
	}
	cl := call{method: "POST", path: "/vendors/bulk", body: body, contentType: "application/json"}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return nil, err
	}
	page, err := normalizeList[models.Vendor](cl.endpoint(), raw)
	if err != nil {
		return nil, c.shape(ctx, err)
	}
	return page.Items, nil
}
