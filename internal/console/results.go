package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/listing"
	"rbconsole/internal/models"
	"rbconsole/internal/presets"
)

// ResultsView is what the results page renders.
type ResultsView struct {
	Filter       listing.Filter
	Page         int
	PrevDisabled bool
	Items        []models.Result
	// Waived counts WAIVED rows on the current page, shown as a banner.
	Waived  int
	Detail  *models.ResultDetail
	Loading bool
}

// ResultsController lists evaluation results, exports them and manages
// filter presets.
type ResultsController struct {
	page
	api     ResultsAPI
	presets PresetStore
	list    *pagedList[models.Result]
	drawer  *Drawer[models.ResultDetail]
}

func NewResults(api ResultsAPI, store PresetStore, d Deps) *ResultsController {
	return &ResultsController{
		page:    newPage("results", d),
		api:     api,
		presets: store,
		list:    newPagedList(api.ListResults),
		drawer:  NewDrawer(api.GetResult),
	}
}

// SetFilter returns to page 1 and refetches. Unknown status or severity
// values are rejected before any request.
func (c *ResultsController) SetFilter(ctx context.Context, f listing.Filter) error {
	return c.Show(ctx, f, 1)
}

// Show validates f and fetches page n of it directly.
func (c *ResultsController) Show(ctx context.Context, f listing.Filter, n int) error {
	f, err := normalizeFilter(f)
	if err != nil {
		return err
	}
	q := listing.NewQuery(f)
	q.Page = max(n, 1)
	return c.load(ctx, q)
}

// normalizeFilter upper-cases status and severity, rejecting unknown values.
func normalizeFilter(f listing.Filter) (listing.Filter, error) {
	status, ok := models.ParseStatus(f.Status)
	if !ok {
		return f, formErr("status", fmt.Sprintf("Unknown status %q", f.Status))
	}
	severity, ok := models.ParseSeverity(f.Severity)
	if !ok {
		return f, formErr("severity", fmt.Sprintf("Unknown severity %q", f.Severity))
	}
	f.Status, f.Severity = string(status), string(severity)
	return f, nil
}

func (c *ResultsController) Load(ctx context.Context) error {
	return c.load(ctx, c.list.current())
}

func (c *ResultsController) GoTo(ctx context.Context, n int) error {
	q := c.list.current()
	q.Page = max(n, 1)
	return c.load(ctx, q)
}

func (c *ResultsController) Next(ctx context.Context) error {
	return c.load(ctx, c.list.next())
}

// Prev is a no-op on the first page.
func (c *ResultsController) Prev(ctx context.Context) error {
	q, ok := c.list.prev()
	if !ok {
		return nil
	}
	return c.load(ctx, q)
}

func (c *ResultsController) load(ctx context.Context, q listing.Query) error {
	return c.run(ctx, "result list", func(ctx context.Context) error {
		return c.list.load(ctx, q)
	})
}

// Open fetches one result by its control_id:asset_id key.
func (c *ResultsController) Open(ctx context.Context, id string) (models.ResultDetail, error) {
	var detail models.ResultDetail
	err := c.run(ctx, "result detail", func(ctx context.Context) error {
		var err error
		detail, err = c.drawer.Open(ctx, id)
		return err
	})
	return detail, err
}

func (c *ResultsController) Close() { c.drawer.Close() }

// Export streams the current filter set, without paging, to w.
func (c *ResultsController) Export(ctx context.Context, format string, w io.Writer) (apiclient.Download, error) {
	return c.export(ctx, format, c.list.current().Filter, w)
}

// ExportFilter validates f and exports it without listing it first.
func (c *ResultsController) ExportFilter(ctx context.Context, f listing.Filter, format string, w io.Writer) (apiclient.Download, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return apiclient.Download{}, err
	}
	return c.export(ctx, format, f, w)
}

func (c *ResultsController) export(ctx context.Context, format string, f listing.Filter, w io.Writer) (apiclient.Download, error) {
	var dl apiclient.Download
	err := c.run(ctx, "export", func(ctx context.Context) error {
		if format != apiclient.FormatCSV && format != apiclient.FormatJSON {
			return formErr("format", fmt.Sprintf("Unknown export format %q", format))
		}
		var err error
		dl, err = c.api.ExportResults(ctx, format, f, w)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("%s size: %d bytes", strings.ToUpper(format), dl.Size))
		return nil
	})
	return dl, err
}

// SavePreset stores the current filter under name.
func (c *ResultsController) SavePreset(ctx context.Context, name string) (presets.Preset, error) {
	var p presets.Preset
	err := c.run(ctx, "preset save", func(ctx context.Context) error {
		var err error
		p, err = c.presets.Save(ctx, name, c.list.current().Filter)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("Preset %q saved", p.Name))
		return nil
	})
	return p, err
}

// ApplyPreset restores the saved status, severity, cloud and framework,
// keeps the other filters and refetches from page 1.
func (c *ResultsController) ApplyPreset(ctx context.Context, name string) error {
	return c.ApplyPresetOver(ctx, name, c.list.current().Filter)
}

// ApplyPresetOver is ApplyPreset starting from base instead of the current
// filter.
func (c *ResultsController) ApplyPresetOver(ctx context.Context, name string, base listing.Filter) error {
	f := base
	err := c.run(ctx, "preset apply", func(ctx context.Context) error {
		saved, err := c.presets.Apply(ctx, name)
		if err != nil {
			return err
		}
		f.Status, f.Severity, f.Cloud, f.Framework = saved.Status, saved.Severity, saved.Cloud, saved.Framework
		return nil
	})
	if err != nil {
		return err
	}
	return c.load(ctx, listing.NewQuery(f))
}

func (c *ResultsController) Presets(ctx context.Context) ([]presets.Preset, error) {
	var out []presets.Preset
	err := c.run(ctx, "preset list", func(ctx context.Context) error {
		var err error
		out, err = c.presets.List(ctx)
		return err
	})
	return out, err
}

func (c *ResultsController) DeletePreset(ctx context.Context, name string) error {
	return c.run(ctx, "preset delete", func(ctx context.Context) error {
		return c.presets.Delete(ctx, name)
	})
}

func (c *ResultsController) View() (ResultsView, error) {
	if err := c.view(); err != nil {
		return ResultsView{}, err
	}
	q, items := c.list.snapshot()
	v := ResultsView{
		Filter:       q.Filter,
		Page:         q.Page,
		PrevDisabled: listing.Pager{Page: q.Page}.PrevDisabled(),
		Items:        items,
		Waived:       countStatus(items, models.StatusWaived),
		Loading:      c.drawer.Loading(),
	}
	if d, ok := c.drawer.Detail(); ok {
		v.Detail = &d
	}
	return v, nil
}

func countStatus(items []models.Result, s models.Status) int {
	n := 0
	for _, r := range items {
		if r.Status == s {
			n++
		}
	}
	return n
}
