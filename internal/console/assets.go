package console

import (
	"context"

	"rbconsole/internal/listing"
	"rbconsole/internal/models"
)

// AssetsView is what the assets page renders.
type AssetsView struct {
	Filter       listing.Filter
	Page         int
	PrevDisabled bool
	Items        []models.Asset
	Detail       *models.AssetDetail
	Loading      bool
}

// AssetsController lists assets by cloud, type and tag.
type AssetsController struct {
	page
	list   *pagedList[models.Asset]
	drawer *Drawer[models.AssetDetail]
}

func NewAssets(api AssetsAPI, d Deps) *AssetsController {
	return &AssetsController{
		page:   newPage("assets", d),
		list:   newPagedList(api.ListAssets),
		drawer: NewDrawer(api.GetAsset),
	}
}

// SetFilter keeps only the asset filters, returns to page 1 and refetches.
func (c *AssetsController) SetFilter(ctx context.Context, f listing.Filter) error {
	return c.Show(ctx, f, 1)
}

// Show fetches page n of f directly.
func (c *AssetsController) Show(ctx context.Context, f listing.Filter, n int) error {
	q := listing.NewQuery(listing.Filter{Cloud: f.Cloud, Type: f.Type, Tag: f.Tag})
	q.Page = max(n, 1)
	return c.load(ctx, q)
}

// Load fetches the current page again.
func (c *AssetsController) Load(ctx context.Context) error {
	return c.load(ctx, c.list.current())
}

// GoTo fetches page n, floored at 1.
func (c *AssetsController) GoTo(ctx context.Context, n int) error {
	q := c.list.current()
	q.Page = max(n, 1)
	return c.load(ctx, q)
}

func (c *AssetsController) Next(ctx context.Context) error {
	return c.load(ctx, c.list.next())
}

// Prev is a no-op on the first page.
func (c *AssetsController) Prev(ctx context.Context) error {
	q, ok := c.list.prev()
	if !ok {
		return nil
	}
	return c.load(ctx, q)
}

func (c *AssetsController) load(ctx context.Context, q listing.Query) error {
	return c.run(ctx, "asset list", func(ctx context.Context) error {
		return c.list.load(ctx, q)
	})
}

// Open fetches the asset detail into the drawer.
func (c *AssetsController) Open(ctx context.Context, assetID string) (models.AssetDetail, error) {
	var detail models.AssetDetail
	err := c.run(ctx, "asset detail", func(ctx context.Context) error {
		var err error
		detail, err = c.drawer.Open(ctx, assetID)
		return err
	})
	return detail, err
}

func (c *AssetsController) Close() { c.drawer.Close() }

func (c *AssetsController) View() (AssetsView, error) {
	if err := c.view(); err != nil {
		return AssetsView{}, err
	}
	q, items := c.list.snapshot()
	v := AssetsView{
		Filter:       q.Filter,
		Page:         q.Page,
		PrevDisabled: listing.Pager{Page: q.Page}.PrevDisabled(),
		Items:        items,
		Loading:      c.drawer.Loading(),
	}
	if d, ok := c.drawer.Detail(); ok {
		v.Detail = &d
	}
	return v, nil
}
