package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"rbconsole/internal/apiclient"
	"rbconsole/internal/listing"
	"rbconsole/internal/models"
)

// ComplianceView is the framework matrix as rendered. Framework is the name
// the backend returned, shown verbatim.
type ComplianceView struct {
	Selected     string
	Framework    string
	Score        int
	Requirements []models.Requirement
	Totals       *models.ComplianceTotals
}

// ComplianceController shows the requirement matrix of one framework.
type ComplianceController struct {
	page
	api ComplianceAPI

	mu       sync.Mutex
	selected string
	matrix   *models.ComplianceMatrix
}

func NewCompliance(api ComplianceAPI, d Deps) *ComplianceController {
	return &ComplianceController{page: newPage("compliance", d), api: api}
}

// Select fetches the summary for framework. Selecting the framework already
// shown does not fetch again.
func (c *ComplianceController) Select(ctx context.Context, framework string) (ComplianceView, error) {
	c.mu.Lock()
	cached := c.matrix != nil && c.selected == framework
	c.mu.Unlock()
	if cached {
		return c.View()
	}

	err := c.run(ctx, "compliance summary", func(ctx context.Context) error {
		if framework == "" {
			return formErr("framework", "Select a framework")
		}
		m, err := c.api.ComplianceSummary(ctx, framework)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.selected, c.matrix = framework, &m
		c.mu.Unlock()
		return nil
	})
	if err != nil {
		return ComplianceView{}, err
	}
	return c.View()
}

// EvidencePack downloads the PDF for the selected framework.
func (c *ComplianceController) EvidencePack(ctx context.Context, w io.Writer) (apiclient.Download, error) {
	var dl apiclient.Download
	err := c.run(ctx, "evidence pack", func(ctx context.Context) error {
		c.mu.Lock()
		framework := c.selected
		c.mu.Unlock()
		if framework == "" {
			return formErr("framework", "Select a framework")
		}
		var err error
		dl, err = c.api.EvidencePack(ctx, framework, w)
		if err != nil {
			return err
		}
		c.notify.Info(fmt.Sprintf("Evidence pack %s: %d bytes", dl.Filename, dl.Size))
		return nil
	})
	return dl, err
}

// FailingResults is the results filter a requirement row links to.
func (c *ComplianceController) FailingResults() listing.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return listing.Filter{Framework: c.selected, Status: string(models.StatusFail)}
}

func (c *ComplianceController) View() (ComplianceView, error) {
	if err := c.view(); err != nil {
		return ComplianceView{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v := ComplianceView{Selected: c.selected}
	if c.matrix == nil {
		return v, nil
	}
	v.Framework = c.matrix.Framework
	if v.Framework == "" {
		v.Framework = c.selected
	}
	v.Score, v.Requirements, v.Totals = c.matrix.Score, c.matrix.Requirements, c.matrix.Totals
	return v, nil
}
