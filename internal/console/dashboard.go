package console

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"rbconsole/internal/models"
)

// DashboardView pairs the latest run with the result counts of that run.
type DashboardView struct {
	Latest  *models.Run
	Summary models.ResultsSummary
}

type DashboardController struct {
	page
	api DashboardAPI

	mu    sync.Mutex
	state DashboardView
}

func NewDashboard(api DashboardAPI, d Deps) *DashboardController {
	return &DashboardController{page: newPage("dashboard", d), api: api}
}

// Load fetches the latest run and the results summary concurrently.
func (c *DashboardController) Load(ctx context.Context) (DashboardView, error) {
	var v DashboardView
	err := c.run(ctx, "dashboard", func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			run, err := c.api.LatestRun(gctx)
			if err != nil {
				return fmt.Errorf("latest run: %w", err)
			}
			v.Latest = run
			return nil
		})
		g.Go(func() error {
			summary, err := c.api.ResultsSummary(gctx)
			if err != nil {
				return fmt.Errorf("results summary: %w", err)
			}
			v.Summary = summary
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}
		c.mu.Lock()
		c.state = v
		c.mu.Unlock()
		return nil
	})
	return v, err
}

func (c *DashboardController) View() (DashboardView, error) {
	if err := c.view(); err != nil {
		return DashboardView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, nil
}
