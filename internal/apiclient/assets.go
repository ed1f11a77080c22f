package apiclient

import (
	"context"

	"rbconsole/internal/listing"
	"rbconsole/internal/models"
)

func (c *Client) ListAssets(ctx context.Context, q listing.Query) (models.Page[models.Asset], error) {
	cl := call{method: "GET", path: "/assets", query: q.Values()}
	raw, err := c.raw(ctx, cl)
	if err != nil {
		return models.Page[models.Asset]{}, err
	}
	page, err := normalizeList[models.Asset](cl.endpoint(), raw)
	if err != nil {
		return page, c.shape(ctx, err)
	}
	return page, nil
}

func (c *Client) GetAsset(ctx context.Context, assetID string) (models.AssetDetail, error) {
	var out models.AssetDetail
	err := c.decode(ctx, call{method: "GET", path: "/assets/" + escape(assetID)}, &out)
	return out, err
}
