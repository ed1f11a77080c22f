package console

import (
	"context"
	"fmt"
	"sync"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/models"
)

// ControlsView is the filtered control catalogue.
type ControlsView struct {
	Filter   apiclient.ControlFilter
	Controls []models.Control
}

type ControlsController struct {
	page
	api ControlsAPI

	mu    sync.Mutex
	state ControlsView
}

func NewControls(api ControlsAPI, d Deps) *ControlsController {
	return &ControlsController{page: newPage("controls", d), api: api}
}

// Search refetches the catalogue for f.
func (c *ControlsController) Search(ctx context.Context, f apiclient.ControlFilter) (ControlsView, error) {
	var v ControlsView
	err := c.run(ctx, "control search", func(ctx context.Context) error {
		sev, ok := models.ParseSeverity(f.Severity)
		if !ok {
			return formErr("severity", fmt.Sprintf("Unknown severity %q", f.Severity))
		}
		f.Severity = string(sev)
		controls, err := c.api.ListControls(ctx, f)
		if err != nil {
			return err
		}
		v = ControlsView{Filter: f, Controls: controls}
		c.mu.Lock()
		c.state = v
		c.mu.Unlock()
		return nil
	})
	return v, err
}

func (c *ControlsController) View() (ControlsView, error) {
	if err := c.view(); err != nil {
		return ControlsView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}
